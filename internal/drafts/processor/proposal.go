package processor

import (
	"fmt"

	"outreach-server/internal/store"
)

const fallbackIssue = "design inconsistencies"

// Proposal is the generated outreach text for one page
type Proposal struct {
	FBMessage    string
	EmailSubject string
	EmailBody    string
}

// ComposeProposal fills the outreach template from the page name and the
// first issue of its analysis.
func ComposeProposal(pageName string, issues store.Issues, agencyName string) Proposal {
	issue := fallbackIssue
	if len(issues) > 0 && issues[0].Description != "" {
		issue = issues[0].Description
	}

	message := fmt.Sprintf("Hi %s, I checked your Facebook page and noticed some issues regarding %s. "+
		"I can share one free concept for you to review — no obligations. Interested?", pageName, issue)

	return Proposal{
		FBMessage:    message,
		EmailSubject: fmt.Sprintf("A design idea for %s", pageName),
		EmailBody:    fmt.Sprintf("%s<br><br>Best,<br>The %s Team", message, agencyName),
	}
}

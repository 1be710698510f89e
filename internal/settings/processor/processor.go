package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"outreach-server/internal/events"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/google/uuid"
)

// Widget kinds decide how a setting is edited and validated
const (
	KindBoolean   = "boolean"
	KindJSONArray = "json_array"
	KindNumber    = "number"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrInvalidValue    = errors.New("invalid setting value")
	ErrNoUpdates       = errors.New("no settings to update")
	ErrFailedQuery     = errors.New("failed to load settings")
	ErrFailedUpdate    = errors.New("failed to update settings")
)

var settingKinds = map[string]string{
	"moderator_approval_required": KindBoolean,
	"auto_approve_enabled":        KindBoolean,
	"follow_up_delay_days":        KindJSONArray,
}

type SettingsStore interface {
	ListSettings(ctx context.Context) ([]store.Setting, error)
	UpdateSettings(ctx context.Context, updates []store.SettingUpdate, updatedBy uuid.UUID) ([]store.Setting, error)
}

type Auditor interface {
	Record(ctx context.Context, entry events.Entry) error
}

type SettingsProcessor struct {
	store   SettingsStore
	auditor Auditor
	logger  *observability.Logger
}

func New(store SettingsStore, auditor Auditor, logger *observability.Logger) SettingsProcessor {
	return SettingsProcessor{
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
}

// SettingView is a setting row tagged with its widget kind
type SettingView struct {
	store.Setting
	Kind string `json:"kind"`
}

// KindOf returns the widget kind for a key. Keys without an explicit kind are numbers.
func KindOf(key string) string {
	if kind, ok := settingKinds[key]; ok {
		return kind
	}
	return KindNumber
}

// ValidateValue checks a raw value against the widget kind of its key.
func ValidateValue(key, value string) error {
	switch KindOf(key) {
	case KindBoolean:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
	case KindJSONArray:
		var days []int
		if err := json.Unmarshal([]byte(value), &days); err != nil || days == nil {
			return fmt.Errorf("%w: %s must be a JSON array of whole numbers", ErrInvalidValue, key)
		}
		for _, d := range days {
			if d < 0 {
				return fmt.Errorf("%w: %s must not contain negative numbers", ErrInvalidValue, key)
			}
		}
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidValue, key)
		}
	}
	return nil
}

func (p *SettingsProcessor) ListSettings(ctx context.Context) ([]SettingView, error) {
	settings, err := p.store.ListSettings(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list settings", err)
		return nil, ErrFailedQuery
	}
	return views(settings), nil
}

// UpdateSettings validates every value, then writes the batch atomically.
func (p *SettingsProcessor) UpdateSettings(ctx context.Context, updates []store.SettingUpdate, updatedBy uuid.UUID) ([]SettingView, error) {
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	keys := make([]string, 0, len(updates))
	for i := range updates {
		updates[i].Value = strings.TrimSpace(updates[i].Value)
		if err := ValidateValue(updates[i].Key, updates[i].Value); err != nil {
			return nil, err
		}
		keys = append(keys, updates[i].Key)
	}

	settings, err := p.store.UpdateSettings(ctx, updates, updatedBy)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSettingNotFound
		}
		p.logger.Error(ctx, "failed to update settings", err)
		return nil, ErrFailedUpdate
	}

	if err := p.auditor.Record(ctx, events.Entry{
		ActorID:    &updatedBy,
		Action:     store.AuditActionSettingsUpdated,
		EntityType: store.EntityTypeSettings,
		Details:    map[string]interface{}{"updated_keys": keys},
	}); err != nil {
		p.logger.Error(ctx, "failed to audit settings update", err)
	}
	p.logger.Info(ctx, fmt.Sprintf("updated %d settings", len(keys)))

	return views(settings), nil
}

func views(settings []store.Setting) []SettingView {
	out := make([]SettingView, 0, len(settings))
	for _, s := range settings {
		out = append(out, SettingView{Setting: s, Kind: KindOf(s.Key)})
	}
	return out
}

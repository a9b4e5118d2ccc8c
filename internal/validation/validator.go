package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/skillswap-api/internal/models"
)

const (
	MaxNameLength     = 100
	MaxLocationLength = 200
	MaxLabelLength    = 60
	MaxLabels         = 50
	MaxMessageLength  = 1000
)

var (
	idRegex     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
	avatarRegex = regexp.MustCompile(`^(https?://|/)\S+$`)
)

// Errors is a list of field errors usable as an error value
type Errors []models.ValidationError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Field+": "+ve.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns nil when there are no errors
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validator provides validation methods. It remembers ids seen in the current
// batch so imports can flag duplicates.
type Validator struct {
	seenIDs map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		seenIDs: make(map[string]bool),
	}
}

// ValidateID checks the shape of a user or request id
func ValidateID(id string) bool {
	return idRegex.MatchString(id) || isValidUUID(id)
}

// ValidateProfile validates a profile patch. A missing or blank name is not an
// error here: such a patch is simply not committed.
func (v *Validator) ValidateProfile(p *models.ProfilePatch) Errors {
	var errors Errors

	if p.ID != "" && !ValidateID(p.ID) {
		errors = append(errors, models.ValidationError{Field: "id", Message: "invalid id format", Value: p.ID})
	}
	if p.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Name)) > MaxNameLength {
		errors = append(errors, models.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name exceeds %d characters", MaxNameLength),
		})
	}
	if p.Location != nil && utf8.RuneCountInString(*p.Location) > MaxLocationLength {
		errors = append(errors, models.ValidationError{
			Field:   "location",
			Message: fmt.Sprintf("location exceeds %d characters", MaxLocationLength),
		})
	}
	if p.AvatarRef != nil && *p.AvatarRef != "" && !avatarRegex.MatchString(*p.AvatarRef) {
		errors = append(errors, models.ValidationError{Field: "avatar", Message: "avatar must be an absolute path or http(s) URL", Value: *p.AvatarRef})
	}

	errors = append(errors, validateLabels("skills_offered", p.SkillsOffered)...)
	errors = append(errors, validateLabels("skills_wanted", p.SkillsWanted)...)
	errors = append(errors, validateLabels("availability", p.Availability)...)

	return errors
}

// ValidateLabel validates a single skill or availability label
func (v *Validator) ValidateLabel(list models.SkillList, label string) Errors {
	var errors Errors
	if !models.ValidSkillLists[list] {
		errors = append(errors, models.ValidationError{Field: "list", Message: "list must be one of: offered, wanted, availability", Value: string(list)})
	}
	label = strings.TrimSpace(label)
	if label == "" {
		errors = append(errors, models.ValidationError{Field: "label", Message: "label is required"})
	} else if utf8.RuneCountInString(label) > MaxLabelLength {
		errors = append(errors, models.ValidationError{Field: "label", Message: fmt.Sprintf("label exceeds %d characters", MaxLabelLength), Value: label})
	}
	return errors
}

// ValidateSubmission validates a swap request before the matching checks run
func (v *Validator) ValidateSubmission(s *models.SwapSubmission) Errors {
	var errors Errors

	if s.FromUserID == "" {
		errors = append(errors, models.ValidationError{Field: "from_user_id", Message: "from_user_id is required"})
	}
	if s.ToUserID == "" {
		errors = append(errors, models.ValidationError{Field: "to_user_id", Message: "to_user_id is required"})
	} else if s.ToUserID == s.FromUserID {
		errors = append(errors, models.ValidationError{Field: "to_user_id", Message: "cannot request a swap with yourself", Value: s.ToUserID})
	}
	if s.SkillOffered == "" {
		errors = append(errors, models.ValidationError{Field: "skill_offered", Message: "skill_offered is required"})
	}
	if s.SkillRequested == "" {
		errors = append(errors, models.ValidationError{Field: "skill_requested", Message: "skill_requested is required"})
	}
	if utf8.RuneCountInString(s.Message) > MaxMessageLength {
		errors = append(errors, models.ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("message exceeds %d characters", MaxMessageLength),
		})
	}

	return errors
}

// ValidateImportRow validates one profile row of a bulk import and converts it
// to a patch. lineNum is attached to every error.
func (v *Validator) ValidateImportRow(row *models.UserCSV, lineNum int) (*models.ProfilePatch, Errors) {
	var errors Errors

	if row.ID == "" {
		errors = append(errors, models.ValidationError{Field: "id", Message: "id is required"})
	} else if !ValidateID(row.ID) {
		errors = append(errors, models.ValidationError{Field: "id", Message: "invalid id format", Value: row.ID})
	} else if v.seenIDs[row.ID] {
		errors = append(errors, models.ValidationError{Field: "id", Message: "duplicate id in file", Value: row.ID})
	}

	if strings.TrimSpace(row.Name) == "" {
		errors = append(errors, models.ValidationError{Field: "name", Message: "name is required"})
	}

	name := row.Name
	patch := &models.ProfilePatch{
		ID:       row.ID,
		Name:     &name,
		Location: row.Location,
	}
	if row.SkillsOffered != nil {
		patch.SkillsOffered = SplitLabels(*row.SkillsOffered)
	}
	if row.SkillsWanted != nil {
		patch.SkillsWanted = SplitLabels(*row.SkillsWanted)
	}
	if row.Availability != nil {
		patch.Availability = SplitLabels(*row.Availability)
	}

	// A blank is_public leaves visibility unchanged; new users start public
	if row.IsPublic != nil {
		switch *row.IsPublic {
		case "":
		case "true":
			patch.IsPublic = boolPtr(true)
		case "false":
			patch.IsPublic = boolPtr(false)
		default:
			errors = append(errors, models.ValidationError{Field: "is_public", Message: "is_public must be 'true' or 'false'", Value: *row.IsPublic})
		}
	}
	errors = append(errors, v.ValidateProfile(patch)...)

	for i := range errors {
		errors[i].Line = lineNum
	}
	if len(errors) == 0 {
		v.seenIDs[row.ID] = true
		return patch, nil
	}
	return nil, errors
}

func boolPtr(b bool) *bool { return &b }

// SplitLabels parses a semicolon separated label list, dropping blanks
func SplitLabels(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateLabels(field string, labels []string) Errors {
	var errors Errors
	if len(labels) > MaxLabels {
		errors = append(errors, models.ValidationError{Field: field, Message: fmt.Sprintf("at most %d entries allowed", MaxLabels)})
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			errors = append(errors, models.ValidationError{Field: field, Message: "entries must not be blank"})
			continue
		}
		if utf8.RuneCountInString(l) > MaxLabelLength {
			errors = append(errors, models.ValidationError{Field: field, Message: fmt.Sprintf("entry exceeds %d characters", MaxLabelLength), Value: l})
		}
	}
	return errors
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

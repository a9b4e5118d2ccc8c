package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
	"github.com/skillswap-api/internal/validation"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos *repository.Repositories
	feed  Feed
	log   zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, feed Feed, log zerolog.Logger) *importService {
	return &importService{
		repos: repos,
		feed:  feed,
		log:   log.With().Str("service", "import").Logger(),
	}
}

// profileNDJSON is one profile line of an NDJSON import
type profileNDJSON struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      *string  `json:"location"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Availability  []string `json:"availability"`
	IsPublic      *bool    `json:"is_public"`
}

// Import reads profiles from r and upserts every valid row. Rows that fail
// validation are reported with their line number and do not stop the import.
func (s *importService) Import(ctx context.Context, actor access.Actor, r io.Reader, format string) (*models.ImportResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	startTime := time.Now()
	result := &models.ImportResult{}

	s.log.Info().Str("format", format).Str("admin", actor.UserID).Msg("Starting profile import")

	var err error
	switch format {
	case "csv":
		err = s.processCSV(ctx, r, result)
	case "ndjson":
		err = s.processNDJSON(ctx, r, result)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	result.DurationMs = time.Since(startTime).Milliseconds()

	if err != nil {
		s.log.Error().Err(err).Msg("Import failed")
		return result, err
	}

	// Calculate error rate for observability
	var errorRate float64
	if result.TotalRecords > 0 {
		errorRate = float64(result.FailedCount) / float64(result.TotalRecords) * 100
	}
	s.log.Info().
		Int("total", result.TotalRecords).
		Int("successful", result.SuccessfulCount).
		Int("failed", result.FailedCount).
		Float64("error_rate_pct", errorRate).
		Int64("duration_ms", result.DurationMs).
		Msg("Import completed")

	if result.SuccessfulCount > 0 {
		s.feed.Notify("Profiles Imported", fmt.Sprintf("%d profiles have been imported.", result.SuccessfulCount), models.SeverityInfo)
	}
	return result, nil
}

// processCSV imports a CSV file with a header row. Columns are matched by name.
func (s *importService) processCSV(ctx context.Context, r io.Reader, result *models.ImportResult) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	validator := validation.NewValidator()

	// Read header
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	headerMap := make(map[string]int)
	for i, h := range header {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	lineNum := 1 // Start after header
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNum++
		if err != nil {
			result.TotalRecords++
			result.FailedCount++
			result.Errors = append(result.Errors, models.ValidationError{Line: lineNum, Field: "row", Message: err.Error()})
			continue
		}
		result.TotalRecords++

		// Respect context cancellation for long-running imports
		if lineNum%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		row := &models.UserCSV{
			ID:            getField(record, headerMap, "id"),
			Name:          getField(record, headerMap, "name"),
			Location:      optionalField(record, headerMap, "location"),
			SkillsOffered: optionalField(record, headerMap, "skills_offered"),
			SkillsWanted:  optionalField(record, headerMap, "skills_wanted"),
			Availability:  optionalField(record, headerMap, "availability"),
		}
		if public := optionalField(record, headerMap, "is_public"); public != nil {
			lower := strings.ToLower(*public)
			row.IsPublic = &lower
		}
		s.upsertRow(validator, row, lineNum, result)
	}
	return nil
}

// processNDJSON imports one JSON profile per line. Blank lines are skipped.
func (s *importService) processNDJSON(ctx context.Context, r io.Reader, result *models.ImportResult) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	validator := validation.NewValidator()

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.TotalRecords++

		if lineNum%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		var rec profileNDJSON
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, models.ValidationError{Line: lineNum, Field: "json", Message: "invalid JSON"})
			continue
		}

		row := &models.UserCSV{
			ID:            rec.ID,
			Name:          rec.Name,
			Location:      rec.Location,
			SkillsOffered: joinLabels(rec.SkillsOffered),
			SkillsWanted:  joinLabels(rec.SkillsWanted),
			Availability:  joinLabels(rec.Availability),
		}
		if rec.IsPublic != nil {
			public := strconv.FormatBool(*rec.IsPublic)
			row.IsPublic = &public
		}
		s.upsertRow(validator, row, lineNum, result)
	}
	return scanner.Err()
}

func (s *importService) upsertRow(validator *validation.Validator, row *models.UserCSV, lineNum int, result *models.ImportResult) {
	patch, errs := validator.ValidateImportRow(row, lineNum)
	if len(errs) > 0 {
		result.FailedCount++
		result.Errors = append(result.Errors, errs...)
		return
	}
	if _, ok := s.repos.User.Upsert(patch); !ok {
		result.SkippedCount++
		return
	}
	result.SuccessfulCount++
}

// getField safely gets a field from a CSV record
func getField(record []string, headerMap map[string]int, field string) string {
	if idx, ok := headerMap[field]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

// optionalField returns nil when the header has no such column
func optionalField(record []string, headerMap map[string]int, field string) *string {
	if _, ok := headerMap[field]; !ok {
		return nil
	}
	value := getField(record, headerMap, field)
	return &value
}

// joinLabels returns nil for a key missing from the JSON object
func joinLabels(labels []string) *string {
	if labels == nil {
		return nil
	}
	joined := strings.Join(labels, ";")
	return &joined
}

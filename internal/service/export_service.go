package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/repository"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	feed  Feed
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, feed Feed, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		feed:  feed,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamReport writes report to w in the given format. When w is an
// http.ResponseWriter the download headers are set before the first byte.
func (s *exportService) StreamReport(ctx context.Context, actor access.Actor, w io.Writer, report models.ReportType, format string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !models.ValidReportTypes[report] {
		return fmt.Errorf("%q: %w", report, ErrUnknownReport)
	}
	if !models.ValidFormats[format] {
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	if hw, ok := w.(http.ResponseWriter); ok {
		hw.Header().Set("Content-Type", contentType(format))
		hw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", report, format))
	}

	s.log.Info().Str("report", string(report)).Str("format", format).Msg("Starting report export")

	rw := newRecordWriter(w, format)
	var err error
	switch report {
	case models.ReportUserActivity:
		err = s.writeUserActivity(ctx, rw)
	case models.ReportSwapStatistics:
		err = s.writeSwapStatistics(ctx, rw)
	case models.ReportFeedbackLogs:
		err = s.writeFeedbackLogs(ctx, rw)
	}
	if endErr := rw.End(); err == nil {
		err = endErr
	}
	if err != nil {
		s.log.Error().Err(err).Str("report", string(report)).Msg("Report export failed")
		return err
	}

	s.log.Info().Str("report", string(report)).Int("count", rw.Count()).Msg("Report export completed")
	s.feed.Notify("Report Downloaded", fmt.Sprintf("%s report has been generated and downloaded.", report), models.SeverityInfo)
	return nil
}

func (s *exportService) writeUserActivity(ctx context.Context, rw recordWriter) error {
	if err := rw.Begin([]string{
		"user_id", "name", "joined_at", "is_public", "is_banned", "report_count",
		"skills_offered", "skills_wanted", "sent_swaps", "received_swaps", "accepted_swaps",
	}); err != nil {
		return err
	}

	sent := make(map[string]int)
	received := make(map[string]int)
	accepted := make(map[string]int)
	for _, req := range s.repos.Swap.ListAll() {
		sent[req.FromUserID]++
		received[req.ToUserID]++
		if req.Status == models.SwapStatusAccepted {
			accepted[req.FromUserID]++
			accepted[req.ToUserID]++
		}
	}

	return s.repos.User.StreamAll(ctx, func(u *models.User) error {
		row := models.UserActivity{
			UserID:        u.ID,
			Name:          u.Name,
			JoinedAt:      u.JoinedAt.UTC().Format(time.RFC3339),
			IsPublic:      u.IsPublic,
			IsBanned:      u.IsBanned,
			ReportCount:   u.ReportCount,
			SkillsOffered: len(u.SkillsOffered),
			SkillsWanted:  len(u.SkillsWanted),
			SentSwaps:     sent[u.ID],
			ReceivedSwaps: received[u.ID],
			AcceptedSwaps: accepted[u.ID],
		}
		return rw.Write(row, []string{
			row.UserID,
			row.Name,
			row.JoinedAt,
			strconv.FormatBool(row.IsPublic),
			strconv.FormatBool(row.IsBanned),
			strconv.Itoa(row.ReportCount),
			strconv.Itoa(row.SkillsOffered),
			strconv.Itoa(row.SkillsWanted),
			strconv.Itoa(row.SentSwaps),
			strconv.Itoa(row.ReceivedSwaps),
			strconv.Itoa(row.AcceptedSwaps),
		})
	})
}

// writeSwapStatistics aggregates the ledger per skill, in order of first
// appearance.
func (s *exportService) writeSwapStatistics(ctx context.Context, rw recordWriter) error {
	if err := rw.Begin([]string{"skill", "offered", "requested", "pending", "accepted", "rejected"}); err != nil {
		return err
	}

	var order []string
	stats := make(map[string]*models.SwapStatistics)
	entry := func(skill string) *models.SwapStatistics {
		st, ok := stats[skill]
		if !ok {
			st = &models.SwapStatistics{Skill: skill}
			stats[skill] = st
			order = append(order, skill)
		}
		return st
	}

	err := s.repos.Swap.StreamAll(ctx, func(req *models.SwapRequest) error {
		offered := entry(req.SkillOffered)
		offered.Offered++
		requested := entry(req.SkillRequested)
		requested.Requested++

		skills := []*models.SwapStatistics{offered}
		if requested != offered {
			skills = append(skills, requested)
		}
		for _, st := range skills {
			switch req.Status {
			case models.SwapStatusPending:
				st.Pending++
			case models.SwapStatusAccepted:
				st.Accepted++
			case models.SwapStatusRejected:
				st.Rejected++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, skill := range order {
		st := stats[skill]
		if err := rw.Write(st, []string{
			st.Skill,
			strconv.Itoa(st.Offered),
			strconv.Itoa(st.Requested),
			strconv.Itoa(st.Pending),
			strconv.Itoa(st.Accepted),
			strconv.Itoa(st.Rejected),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *exportService) writeFeedbackLogs(ctx context.Context, rw recordWriter) error {
	if err := rw.Begin([]string{"id", "title", "description", "severity", "created_at"}); err != nil {
		return err
	}
	for _, n := range s.feed.Recent(0) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rw.Write(n, []string{
			n.ID,
			n.Title,
			n.Description,
			string(n.Severity),
			n.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return nil
}

func contentType(format string) string {
	switch format {
	case "ndjson":
		return "application/x-ndjson"
	case "csv":
		return "text/csv"
	default:
		return "application/json"
	}
}

// recordWriter streams report rows in one encoding. Write receives the row
// both as a value for the JSON encodings and as CSV fields.
type recordWriter interface {
	Begin(header []string) error
	Write(record interface{}, fields []string) error
	End() error
	Count() int
}

func newRecordWriter(w io.Writer, format string) recordWriter {
	switch format {
	case "csv":
		return &csvRecordWriter{w: csv.NewWriter(w)}
	case "json":
		return &jsonRecordWriter{w: w}
	default:
		flusher, _ := w.(http.Flusher)
		return &ndjsonRecordWriter{w: w, flusher: flusher}
	}
}

type ndjsonRecordWriter struct {
	w       io.Writer
	flusher http.Flusher
	count   int
}

func (n *ndjsonRecordWriter) Begin([]string) error { return nil }

func (n *ndjsonRecordWriter) Write(record interface{}, _ []string) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := n.w.Write(append(data, '\n')); err != nil {
		return err
	}
	n.count++

	// Flush every 100 records for streaming
	if n.count%100 == 0 && n.flusher != nil {
		n.flusher.Flush()
	}
	return nil
}

func (n *ndjsonRecordWriter) End() error {
	if n.flusher != nil {
		n.flusher.Flush()
	}
	return nil
}

func (n *ndjsonRecordWriter) Count() int { return n.count }

type jsonRecordWriter struct {
	w     io.Writer
	count int
}

func (j *jsonRecordWriter) Begin([]string) error {
	_, err := j.w.Write([]byte("["))
	return err
}

func (j *jsonRecordWriter) Write(record interface{}, _ []string) error {
	if j.count > 0 {
		if _, err := j.w.Write([]byte(",")); err != nil {
			return err
		}
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := j.w.Write(data); err != nil {
		return err
	}
	j.count++
	return nil
}

func (j *jsonRecordWriter) End() error {
	_, err := j.w.Write([]byte("]"))
	return err
}

func (j *jsonRecordWriter) Count() int { return j.count }

type csvRecordWriter struct {
	w     *csv.Writer
	count int
}

func (c *csvRecordWriter) Begin(header []string) error {
	return c.w.Write(header)
}

func (c *csvRecordWriter) Write(_ interface{}, fields []string) error {
	if err := c.w.Write(fields); err != nil {
		return err
	}
	c.count++
	return nil
}

func (c *csvRecordWriter) End() error {
	c.w.Flush()
	return c.w.Error()
}

func (c *csvRecordWriter) Count() int { return c.count }

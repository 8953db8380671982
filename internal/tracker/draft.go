package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
)

// Draft holds today's inputs until the day is submitted. A draft from an
// earlier calendar day is discarded.
type Draft struct {
	Date   string               `json:"date"`
	Inputs progress.DailyInputs `json:"inputs"`
}

func (s *Service) today() string {
	return s.now().Format(progress.CalendarDateLayout)
}

func (s *Service) loadDraft(ctx context.Context) error {
	s.draft = Draft{Date: s.today()}
	raw, ok, err := s.opts.KV.Get(ctx, KeyDraft)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.log.Warn("discarding unreadable draft", zap.Error(err))
		return nil
	}
	if d.Date == s.draft.Date {
		s.draft = d
	}
	return nil
}

// freshDraft rolls the draft over when the calendar day has changed.
func (s *Service) freshDraft() {
	if today := s.today(); s.draft.Date != today {
		s.draft = Draft{Date: today}
	}
	if s.draft.Inputs.Tasks == nil {
		s.draft.Inputs.Tasks = make(map[program.TaskKey]bool)
	}
}

func (s *Service) saveDraft(ctx context.Context) {
	data, err := json.Marshal(s.draft)
	if err == nil {
		err = s.opts.KV.Set(ctx, KeyDraft, string(data))
	}
	if err != nil {
		s.log.Warn("save draft failed", zap.Error(err))
	}
}

func (s *Service) clearDraft(ctx context.Context) {
	s.draft = Draft{Date: s.today(), Inputs: progress.DailyInputs{Tasks: map[program.TaskKey]bool{}}}
	if err := s.opts.KV.Delete(ctx, KeyDraft); err != nil {
		s.log.Warn("clear draft failed", zap.Error(err))
	}
}

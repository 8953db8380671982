package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/store"
)

// ErrTaskNotActive is returned when toggling a task outside today's set.
var ErrTaskNotActive = errors.New("task is not active today")

// TaskView is one line of today's checklist.
type TaskView struct {
	Key  program.TaskKey `json:"key"`
	Name string          `json:"name"`
	Done bool            `json:"done"`
}

// TodayView is everything the presentation needs to render today.
type TodayView struct {
	Day                int                     `json:"day"`
	Date               string                  `json:"date"`
	DayKind            program.DayKind         `json:"dayKind"`
	Level              program.LevelDefinition `json:"level"`
	Tasks              []TaskView              `json:"tasks"`
	GameDevNote        string                  `json:"gameDevTask"`
	VanNote            string                  `json:"vanActivity"`
	Reflection         progress.Reflection     `json:"reflection"`
	Message            string                  `json:"message"`
	Warning            progress.Warning        `json:"warning"`
	BannerHeadline     string                  `json:"bannerHeadline,omitempty"`
	BannerDetail       string                  `json:"bannerDetail,omitempty"`
	Streak             int                     `json:"streak"`
	ConsecutiveMisses  int                     `json:"consecutiveMisses"`
	PerfectDaysAtLevel int                     `json:"perfectDaysAtLevel"`
	CurrentBook        string                  `json:"currentBook"`
	BookProgress       int                     `json:"bookProgress"`
	Week               progress.WeekStats      `json:"week"`
	ProgramProgress    int                     `json:"programProgress"`
	Missing            []string                `json:"missing"`
	Ready              bool                    `json:"ready"`
}

// Today returns today's view.
func (s *Service) Today() (TodayView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freshDraft()

	now := s.now()
	def, err := s.state.LevelDefinition()
	if err != nil {
		return TodayView{}, err
	}
	active := def.TasksFor(program.DayKindFor(now))

	v := TodayView{
		Day:                s.state.CurrentDay,
		Date:               now.Format(progress.DateLabelLayout),
		DayKind:            program.DayKindFor(now),
		Level:              def,
		GameDevNote:        s.draft.Inputs.GameDevNote,
		VanNote:            s.draft.Inputs.VanNote,
		Reflection:         s.draft.Inputs.Reflection,
		Message:            program.DailyMessage(s.state.CurrentDay),
		Warning:            progress.Status(s.state),
		Streak:             s.state.Streak,
		ConsecutiveMisses:  s.state.ConsecutiveMisses,
		PerfectDaysAtLevel: s.state.PerfectDaysAtLevel,
		CurrentBook:        s.state.CurrentBook,
		BookProgress:       s.state.CurrentBookProgress(),
		Week:               progress.RecentWeek(s.state),
		ProgramProgress:    s.state.ProgramProgress(),
		Missing:            []string{},
	}
	v.BannerHeadline, v.BannerDetail = progress.Banner(s.state)
	for _, k := range active {
		v.Tasks = append(v.Tasks, TaskView{Key: k, Name: k.DisplayName(), Done: s.draft.Inputs.Tasks[k]})
	}

	var incomplete *progress.IncompleteDayError
	if err := progress.Validate(s.draft.Inputs, active); errors.As(err, &incomplete) {
		for _, k := range incomplete.MissingTasks {
			v.Missing = append(v.Missing, string(k))
		}
		v.Missing = append(v.Missing, incomplete.MissingFields...)
	}
	v.Ready = len(v.Missing) == 0
	return v, nil
}

// activeTasks returns today's active set. Callers hold s.mu.
func (s *Service) activeTasks() ([]program.TaskKey, error) {
	return program.ActiveTasks(s.state.Level, s.now())
}

func contains(keys []program.TaskKey, k program.TaskKey) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}

// SetTask marks a task of today's set done or not done.
func (s *Service) SetTask(ctx context.Context, key program.TaskKey, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freshDraft()

	active, err := s.activeTasks()
	if err != nil {
		return err
	}
	if !contains(active, key) {
		return fmt.Errorf("%w: %s", ErrTaskNotActive, key)
	}
	s.draft.Inputs.Tasks[key] = done
	s.saveDraft(ctx)
	return nil
}

// ToggleTask flips a task of today's set and returns its new value.
func (s *Service) ToggleTask(ctx context.Context, key program.TaskKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freshDraft()

	active, err := s.activeTasks()
	if err != nil {
		return false, err
	}
	if !contains(active, key) {
		return false, fmt.Errorf("%w: %s", ErrTaskNotActive, key)
	}
	done := !s.draft.Inputs.Tasks[key]
	s.draft.Inputs.Tasks[key] = done
	s.saveDraft(ctx)
	return done, nil
}

// NotesUpdate changes the free-text fields that are non-nil.
type NotesUpdate struct {
	GameDev *string `json:"gameDevTask,omitempty"`
	Van     *string `json:"vanActivity,omitempty"`
	Win     *string `json:"win,omitempty"`
	Improve *string `json:"improve,omitempty"`
}

// SetNotes updates today's notes.
func (s *Service) SetNotes(ctx context.Context, u NotesUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freshDraft()

	in := &s.draft.Inputs
	if u.GameDev != nil {
		in.GameDevNote = *u.GameDev
	}
	if u.Van != nil {
		in.VanNote = *u.Van
	}
	if u.Win != nil {
		in.Reflection.Win = *u.Win
	}
	if u.Improve != nil {
		in.Reflection.Improve = *u.Improve
	}
	s.saveDraft(ctx)
}

// CompleteResult reports what submitting the day did.
type CompleteResult struct {
	Record       progress.DailyRecord   `json:"record"`
	LevelUp      *progress.LevelUp      `json:"levelUp,omitempty"`
	BookComplete *progress.BookComplete `json:"bookComplete,omitempty"`
	WeeklyReview bool                   `json:"weeklyReview"`
	State        progress.State         `json:"-"`
}

// CompleteDay submits today's draft. A gate failure is returned as a
// *progress.IncompleteDayError and changes nothing.
func (s *Service) CompleteDay(ctx context.Context) (*CompleteResult, error) {
	s.mu.Lock()
	s.freshDraft()

	commit, err := progress.CompleteDay(s.state, s.draft.Inputs, s.now(), progress.Options{
		AllowIncomplete: s.opts.AllowIncomplete,
		NewID:           s.opts.NewID,
	})
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = commit.State
	s.clearDraft(ctx)

	res := &CompleteResult{Record: commit.Record, State: commit.State.Clone()}
	day := commit.Record.Day
	if commit.Record.Completed {
		s.event(ctx, store.EventDayCompleted, day, "")
	} else {
		s.event(ctx, store.EventDayMissed, day, "")
	}
	for _, e := range commit.Effects {
		switch e := e.(type) {
		case progress.LevelUp:
			res.LevelUp = &e
			s.log.Info("level up", zap.Int("from", e.From), zap.Int("to", e.To), zap.String("name", e.Name))
			s.event(ctx, store.EventLevelUp, day, strconv.Itoa(e.From)+" -> "+strconv.Itoa(e.To))
		case progress.BookComplete:
			res.BookComplete = &e
			s.event(ctx, store.EventBookComplete, day, e.Book)
		case progress.WeeklyReviewDue:
			res.WeeklyReview = true
			s.event(ctx, store.EventWeeklyReview, e.Day, "")
		case progress.PersistRequested:
			s.persist(ctx)
			s.checkpoint(ctx, day)
		}
	}
	s.mu.Unlock()

	s.autoSync(ctx, res.State)
	return res, nil
}

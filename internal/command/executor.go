package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tgienger/byteme/internal/interval"
	"github.com/tgienger/byteme/internal/models"
	"github.com/tgienger/byteme/internal/schedule"
	"go.uber.org/zap"
)

// Store is the task storage the executor works against. *db.DB implements it.
type Store interface {
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	TaskAt(ctx context.Context, position int) (*models.Task, error)
	MarkTaskDone(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
	TaskCount(ctx context.Context) (int, error)
	FindTasks(ctx context.Context, query string) ([]models.Task, error)
	ListScheduledBetween(ctx context.Context, start, end time.Time) ([]models.Task, error)
}

// ResponseKind tells the presentation layer what a Response holds
type ResponseKind int

const (
	ResponseAdded ResponseKind = iota + 1
	ResponseList
	ResponseDone
	ResponseDeleted
	ResponseFound
	ResponseFree
	ResponseHelp
	ResponseBye
)

// Response is the outcome of a successful command. It carries data only;
// rendering it is up to the caller.
type Response struct {
	Kind ResponseKind
	// Task is the task added, completed or removed
	Task *models.Task
	// Tasks holds the listing for list and find
	Tasks []models.Task
	// Count is the number of tasks stored after the command ran
	Count int
	// Date is the queried day for free
	Date time.Time
	Free []interval.Interval
	Busy []interval.Interval
}

// Executor runs parsed commands against a Store
type Executor struct {
	store         Store
	logger        *zap.Logger
	eventDuration time.Duration
}

// NewExecutor creates an executor. eventDuration is the length given to
// events added without an explicit end.
func NewExecutor(store Store, logger *zap.Logger, eventDuration time.Duration) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{store: store, logger: logger, eventDuration: eventDuration}
}

// Run parses and executes a single line of input
func (e *Executor) Run(ctx context.Context, line string) (Response, error) {
	cmd, err := Parse(line)
	if err != nil {
		e.logger.Debug("rejected input", zap.String("input", line), zap.Error(err))
		return Response{}, err
	}
	return e.Execute(ctx, cmd)
}

// Execute performs cmd
func (e *Executor) Execute(ctx context.Context, cmd Command) (Response, error) {
	resp, err := e.execute(ctx, cmd)
	if err != nil {
		if KindOf(err) != 0 {
			e.logger.Info("command rejected", zap.String("command", string(cmd.Verb)), zap.Error(err))
		} else {
			e.logger.Error("command failed", zap.String("command", string(cmd.Verb)), zap.Error(err))
		}
		return Response{}, err
	}
	e.logger.Debug("command executed", zap.String("command", string(cmd.Verb)))
	return resp, nil
}

func (e *Executor) execute(ctx context.Context, cmd Command) (Response, error) {
	switch cmd.Verb {
	case VerbList:
		return e.list(ctx)
	case VerbTodo:
		return e.add(ctx, models.Task{Kind: models.KindTodo, Description: cmd.Description})
	case VerbDeadline:
		at := cmd.At
		return e.add(ctx, models.Task{Kind: models.KindDeadline, Description: cmd.Description, At: &at})
	case VerbEvent:
		return e.addEvent(ctx, cmd)
	case VerbDone:
		return e.markDone(ctx, cmd.Position)
	case VerbDelete:
		return e.delete(ctx, cmd.Position)
	case VerbFind:
		tasks, err := e.store.FindTasks(ctx, cmd.Query)
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: ResponseFound, Tasks: tasks}, nil
	case VerbFree:
		return e.free(ctx, cmd.Date)
	case VerbHelp:
		return Response{Kind: ResponseHelp}, nil
	case VerbBye:
		return Response{Kind: ResponseBye}, nil
	}
	return Response{}, newError(InvalidInput, "unknown command %q", cmd.Verb)
}

func (e *Executor) list(ctx context.Context) (Response, error) {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{Kind: ResponseList, Tasks: tasks, Count: len(tasks)}, nil
}

func (e *Executor) addEvent(ctx context.Context, cmd Command) (Response, error) {
	at := cmd.At
	end := at.Add(e.eventDuration)
	if cmd.End != nil {
		end = *cmd.End
	}
	// Reject the span before it reaches storage
	if _, err := interval.New(at, end); err != nil {
		return Response{}, classify(err, "'event'")
	}
	return e.add(ctx, models.Task{Kind: models.KindEvent, Description: cmd.Description, At: &at, End: &end})
}

func (e *Executor) add(ctx context.Context, task models.Task) (Response, error) {
	created, err := e.store.CreateTask(ctx, task)
	if err != nil {
		return Response{}, fmt.Errorf("adding %s: %w", task.Kind, err)
	}
	count, err := e.store.TaskCount(ctx)
	if err != nil {
		return Response{}, err
	}
	e.logger.Info("task added", zap.Int64("task_id", created.ID), zap.Stringer("kind", created.Kind))
	return Response{Kind: ResponseAdded, Task: created, Count: count}, nil
}

func (e *Executor) markDone(ctx context.Context, position int) (Response, error) {
	task, err := e.store.TaskAt(ctx, position)
	if err != nil {
		return Response{}, classify(err, fmt.Sprintf("task %d", position))
	}
	if err := e.store.MarkTaskDone(ctx, task.ID); err != nil {
		return Response{}, classify(err, fmt.Sprintf("task %d", position))
	}
	task.Done = true
	return Response{Kind: ResponseDone, Task: task}, nil
}

func (e *Executor) delete(ctx context.Context, position int) (Response, error) {
	task, err := e.store.TaskAt(ctx, position)
	if err != nil {
		return Response{}, classify(err, fmt.Sprintf("task %d", position))
	}
	if err := e.store.DeleteTask(ctx, task.ID); err != nil {
		return Response{}, classify(err, fmt.Sprintf("task %d", position))
	}
	count, err := e.store.TaskCount(ctx)
	if err != nil {
		return Response{}, err
	}
	e.logger.Info("task deleted", zap.Int64("task_id", task.ID))
	return Response{Kind: ResponseDeleted, Task: task, Count: count}, nil
}

func (e *Executor) free(ctx context.Context, date time.Time) (Response, error) {
	day := schedule.DayBoundary(date)
	tasks, err := e.store.ListScheduledBetween(ctx, day.Start(), day.End())
	if err != nil {
		return Response{}, err
	}

	busy, err := schedule.BusySlots(day.Start(), tasks)
	if err != nil {
		return Response{}, classify(err, "'free time'")
	}
	free := schedule.FreeSlotsWithin(day, busy)

	e.logger.Debug("free time computed",
		zap.String("date", day.Start().Format(DateLayout)),
		zap.Int("scheduled", len(tasks)),
		zap.Int("free", len(free)))
	return Response{Kind: ResponseFree, Date: day.Start(), Free: free, Busy: busy}, nil
}

package lib

import (
	"errors"

	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/cache"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
	"github.com/slok/cpm/internal/remote"
	"github.com/slok/cpm/internal/view"
)

// Entities as exchanged with the API.
type (
	Project        = model.Project
	ProjectCreate  = model.ProjectCreate
	ProjectUpdate  = model.ProjectUpdate
	ProjectStatus  = model.ProjectStatus
	Task           = model.Task
	TaskCreate     = model.TaskCreate
	TaskUpdate     = model.TaskUpdate
	TaskStatus     = model.TaskStatus
	TaskPriority   = model.TaskPriority
	Resource       = model.Resource
	ResourceCreate = model.ResourceCreate
	ResourceUpdate = model.ResourceUpdate
	ResourceType   = model.ResourceType
	Availability   = model.Availability
	// Date is a calendar date, marshaled as YYYY-MM-DD.
	Date = model.Date
)

// NewDate returns the date for the given year, month and day.
var NewDate = model.NewDate

// ParseDate parses a YYYY-MM-DD date.
var ParseDate = model.ParseDate

// CollectionState is a read-only copy of the cached state of one entity kind.
type CollectionState[T cache.Entity] = cache.State[T]

// FetchStatus is the fetch lifecycle of a cached collection.
type FetchStatus = cache.Status

const (
	FetchStatusIdle    = cache.StatusIdle
	FetchStatusLoading = cache.StatusLoading
	FetchStatusLoaded  = cache.StatusLoaded
	FetchStatusFailed  = cache.StatusFailed
)

// Derived views.
type (
	ProjectFilter   = view.ProjectFilter
	ProjectSortKey  = view.ProjectSortKey
	ProjectStats    = view.ProjectStats
	TaskFilter      = view.TaskFilter
	TaskSortKey     = view.TaskSortKey
	TaskStats       = view.TaskStats
	ResourceFilter  = view.ResourceFilter
	ResourceSortKey = view.ResourceSortKey
	ResourceStats   = view.ResourceStats
	Dashboard       = report.Dashboard
	ProjectDetail   = report.ProjectDetail
)

// FilterAll matches any status, priority, type or availability.
const FilterAll = view.FilterAll

const (
	ProjectSortNone      = view.ProjectSortNone
	ProjectSortName      = view.ProjectSortName
	ProjectSortStartDate = view.ProjectSortStartDate
	ProjectSortEndDate   = view.ProjectSortEndDate
	ProjectSortBudget    = view.ProjectSortBudget
	ProjectSortProgress  = view.ProjectSortProgress
	ProjectSortStatus    = view.ProjectSortStatus
)

// Notification is the state of the single notification slot.
type Notification = notify.State

// Severity is the kind of a notification.
type Severity = notify.Severity

const (
	SeveritySuccess = notify.SeveritySuccess
	SeverityError   = notify.SeverityError
	SeverityWarning = notify.SeverityWarning
	SeverityInfo    = notify.SeverityInfo
)

// Sentinel errors for use with [errors.Is].
var (
	// ErrNotFound is returned when the entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when the input is rejected, locally or by the API.
	ErrNotValid = errors.New("not valid")
	// ErrNetwork is returned when the API could not be reached.
	ErrNetwork = errors.New("network error")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case remote.KindOf(err) == remote.KindNetwork:
		return joinErrors(err, ErrNetwork)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }

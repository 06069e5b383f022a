// ABOUTME: Repository interface for training data storage.
// ABOUTME: Satisfied both by the database handle and by a transaction handle.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/reps/internal/models"
	"github.com/harperreed/reps/internal/reorder"
)

// Repository defines typed access to the seven entity tables.
// DB and Tx both implement it through their embedded Queries.
type Repository interface {
	// Exercise operations
	CreateExercise(ctx context.Context, e *models.Exercise) error
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)

	// Template operations
	CreateTemplate(ctx context.Context, t *models.Template) error
	GetTemplate(ctx context.Context, id int64) (*models.Template, error)
	GetTemplateTree(ctx context.Context, id int64) (*models.Template, error)
	FindTemplateByName(ctx context.Context, name string) (*models.Template, error)
	RenameTemplate(ctx context.Context, id int64, name string) error
	DeleteTemplate(ctx context.Context, id int64) error
	ListTemplates(ctx context.Context, offset, limit int) ([]models.TemplateSummary, error)
	CountWorkoutsForTemplate(ctx context.Context, templateID int64) (int, error)
	InsertTemplateSetGroup(ctx context.Context, g *models.TemplateSetGroup) error
	GetTemplateSetGroup(ctx context.Context, templateID, groupID int64) (*models.TemplateSetGroup, error)
	ListTemplateSetGroups(ctx context.Context, templateID int64) ([]models.TemplateSetGroup, error)
	UpdateTemplateSetGroup(ctx context.Context, g *models.TemplateSetGroup) error
	InsertTemplateSet(ctx context.Context, s *models.TemplateSet) error
	GetTemplateSet(ctx context.Context, groupID, setID int64) (*models.TemplateSet, error)
	ListTemplateSets(ctx context.Context, groupID int64) ([]models.TemplateSet, error)
	UpdateTemplateSetType(ctx context.Context, groupID, setID int64, setType models.SetType) error

	// Workout operations
	InsertWorkout(ctx context.Context, w *models.Workout) error
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	GetWorkoutTree(ctx context.Context, id int64) (*models.Workout, error)
	CurrentWorkout(ctx context.Context) (*models.Workout, error)
	ListWorkouts(ctx context.Context, offset, limit int) ([]models.WorkoutSummary, error)
	DeleteWorkout(ctx context.Context, id int64) error
	SetWorkoutFinishedAt(ctx context.Context, id int64, finishedAt *time.Time) error
	InsertSetGroup(ctx context.Context, g *models.SetGroup) error
	GetSetGroup(ctx context.Context, workoutID, groupID int64) (*models.SetGroup, error)
	ListSetGroups(ctx context.Context, workoutID int64) ([]models.SetGroup, error)

	// Set operations
	InsertSet(ctx context.Context, s *models.Set) error
	InsertSets(ctx context.Context, sets []models.Set) error
	GetSet(ctx context.Context, workoutID, setID int64) (*models.Set, error)
	ListSets(ctx context.Context, groupID int64) ([]models.Set, error)
	UpdateSetProgress(ctx context.Context, setID int64, m models.Metrics, finishedAt *time.Time) error

	// Ordered collection operations
	OrderedIDs(ctx context.Context, c Collection, parentID int64) ([]int64, error)
	NextIndex(ctx context.Context, c Collection, parentID int64) (int, error)
	DeleteMember(ctx context.Context, c Collection, parentID, memberID int64) error
	Indexer(c Collection) reorder.Indexer
}

// Compile-time checks that both handles implement Repository.
var (
	_ Repository = (*DB)(nil)
	_ Repository = (*Tx)(nil)
)

// Package sweeper runs periodic consistency repairs. The API keeps
// multi-row mutations transactional, but data written around the API
// (bulk imports, manual fixes) can still strand state; the sweeper
// detects and repairs it instead of leaving an audit script to find it.
package sweeper

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/pkg/monitor"
)

const (
	CleanOrphanDependenciesJob = "clean_orphan_dependencies"
	MarkDelayedProjectsJob     = "mark_delayed_projects"
)

type Manager struct {
	db        *gorm.DB
	cron      *cron.Cron
	cronMutex sync.RWMutex
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:   db,
		cron: cron.New(cron.WithLocation(time.Local)),
	}
}

// Start schedules every known job on the given cron spec and starts the
// scheduler. An empty spec disables the sweeper.
func (m *Manager) Start(spec string) error {
	if spec == "" {
		klog.Info("sweeper disabled, no cron spec configured")
		return nil
	}
	m.cronMutex.Lock()
	defer m.cronMutex.Unlock()
	for _, name := range []string{CleanOrphanDependenciesJob, MarkDelayedProjectsJob} {
		jobFunc, err := m.newJobFunc(name)
		if err != nil {
			return err
		}
		if _, err := m.cron.AddFunc(spec, jobFunc); err != nil {
			return err
		}
	}
	m.cron.Start()
	klog.Infof("sweeper started, spec: %s", spec)
	return nil
}

func (m *Manager) Stop() {
	m.cronMutex.Lock()
	defer m.cronMutex.Unlock()
	m.cron.Stop()
}

// newJobFunc resolves a job name to its runnable. Unknown names error at
// schedule time, not at fire time.
func (m *Manager) newJobFunc(name string) (func(), error) {
	switch name {
	case CleanOrphanDependenciesJob:
		return func() {
			if err := m.cleanOrphanDependencies(); err != nil {
				klog.Errorf("sweeper job %s failed: %v", name, err)
			}
		}, nil
	case MarkDelayedProjectsJob:
		return func() {
			if err := m.markDelayedProjects(); err != nil {
				klog.Errorf("sweeper job %s failed: %v", name, err)
			}
		}, nil
	default:
		return nil, fmt.Errorf("unknown sweeper job %q", name)
	}
}

// cleanOrphanDependencies deletes dependency edges whose endpoints no
// longer exist as live tasks.
func (m *Manager) cleanOrphanDependencies() error {
	res := m.db.Exec(`
		DELETE FROM task_dependencies d
		WHERE NOT EXISTS (
			SELECT 1 FROM tasks t
			WHERE t.id = d.task_id AND t.deleted_at IS NULL
		)
		OR NOT EXISTS (
			SELECT 1 FROM tasks t
			WHERE t.id = d.prerequisite_id AND t.deleted_at IS NULL
		)`)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		monitor.SweeperOrphansRemoved.Add(float64(res.RowsAffected))
		klog.Warningf("removed %d orphaned dependency edges", res.RowsAffected)
	}
	return nil
}

// markDelayedProjects flips active projects past their end date to
// delayed so the status field keeps tracking reality.
func (m *Manager) markDelayedProjects() error {
	res := m.db.Model(&model.Project{}).
		Where("status IN ? AND end_date IS NOT NULL AND end_date < ?",
			[]model.ProjectStatus{model.ProjectActive, model.ProjectOnTrack}, time.Now()).
		Update("status", model.ProjectDelayed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		klog.Infof("marked %d projects as delayed", res.RowsAffected)
	}
	return nil
}

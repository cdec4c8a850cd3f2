package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

//ErrJobNotFound is returned for unknown (or malformed) job ids
var ErrJobNotFound = errors.New(utils.JobNotFoundMessage)

//Job is one row of the jobs table
type Job struct {
	ID        string
	Filename  string
	Status    models.JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

//Store keeps job statuses in sqlite and job files under one directory per job
type Store struct {
	db      *DB
	jobsDir string
}

//Open opens the database at dbPath, jobs files will be kept under jobsDir
func Open(dbPath, jobsDir string) (*Store, error) {
	if err := os.MkdirAll(jobsDir, 0766); err != nil {
		return nil, errors.Wrapf(err, "create jobs directory '%s'", jobsDir)
	}

	db, err := NewDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, jobsDir: jobsDir}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

//CreateJob allocates a new job id, its directory and a pending status row
func (s *Store) CreateJob(filename string) (string, error) {
	id := uuid.New().String()

	if err := os.MkdirAll(s.JobDir(id), 0766); err != nil {
		return "", errors.Wrapf(err, "create job directory for '%s'", id)
	}

	_, err := s.db.Exec(`INSERT INTO jobs (id, status, progress, filename) VALUES (?, ?, 0, ?)`, id, models.JobPending, filename)
	if err != nil {
		os.RemoveAll(s.JobDir(id))
		return "", errors.Wrapf(err, "insert job '%s'", id)
	}

	return id, nil
}

//DeleteJob removes the job's row and its directory
func (s *Store) DeleteJob(id string) error {
	if !validID(id) {
		return ErrJobNotFound
	}

	res, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete job '%s'", id)
	}

	if err := os.RemoveAll(s.JobDir(id)); err != nil {
		return errors.Wrapf(err, "remove job directory of '%s'", id)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrJobNotFound
	}
	return nil
}

//Status returns the job's status, ErrJobNotFound if there is no such job
func (s *Store) Status(id string) (models.JobStatus, error) {
	job, err := s.Job(id)
	if err != nil {
		return models.JobStatus{}, err
	}
	return job.Status, nil
}

//Job returns the whole job row
func (s *Store) Job(id string) (Job, error) {
	if !validID(id) {
		return Job{}, ErrJobNotFound
	}

	row := s.db.QueryRow(`SELECT id, filename, status, progress, error, created_at, updated_at FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrJobNotFound
	} else if err != nil {
		return Job{}, errors.Wrapf(err, "select job '%s'", id)
	}

	return job, nil
}

//UpdateStatus replaces the job's status, progress is clamped into [0,1]
func (s *Store) UpdateStatus(id string, status models.JobStatus) error {
	if !status.Status.Valid() {
		return errors.Errorf("invalid job status '%s'", status.Status)
	}

	progress := status.Progress
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	res, err := s.db.Exec(`UPDATE jobs SET status = ?, progress = ?, error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status.Status, progress, status.Error, id)
	if err != nil {
		return errors.Wrapf(err, "update job '%s'", id)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrJobNotFound
	}

	return nil
}

//ListJobs returns all jobs, newest first
func (s *Store) ListJobs() ([]Job, error) {
	rows, err := s.db.Query(`SELECT id, filename, status, progress, error, created_at, updated_at FROM jobs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select jobs")
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

//FailUnfinished marks jobs left pending/processing by a previous run as failed, returns how many were changed
func (s *Store) FailUnfinished(reason string) (int, error) {
	res, err := s.db.Exec(`UPDATE jobs SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP WHERE status IN (?, ?)`,
		models.JobFailed, reason, models.JobPending, models.JobProcessing)
	if err != nil {
		return 0, errors.Wrap(err, "fail unfinished jobs")
	}

	n, err := res.RowsAffected()
	return int(n), err
}

//OrphanDirs returns the names of job directories that have no job row
func (s *Store) OrphanDirs() ([]string, error) {
	names, err := utils.ListDir(s.jobsDir)
	if err != nil {
		return nil, err
	}

	orphans := make([]string, 0)
	for _, name := range names {
		if _, err := s.Job(name); errors.Is(err, ErrJobNotFound) {
			orphans = append(orphans, name)
		} else if err != nil {
			return nil, err
		}
	}

	return orphans, nil
}

//JobDir returns the directory holding the job's files
func (s *Store) JobDir(id string) string {
	return filepath.Join(s.jobsDir, id)
}

//JobFile returns the path of one of the job's files (utils.InputVideoName, utils.ResultsFileName...)
func (s *Store) JobFile(id, name string) string {
	return filepath.Join(s.JobDir(id), name)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var status string
	var createdAt, updatedAt sqliteTime

	if err := row.Scan(&job.ID, &job.Filename, &status, &job.Status.Progress, &job.Status.Error, &createdAt, &updatedAt); err != nil {
		return Job{}, err
	}

	job.Status.Status = models.JobState(status)
	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time
	return job, nil
}

//validID keeps path traversal out of JobDir, ids are always uuids
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

//sqliteTime scans CURRENT_TIMESTAMP columns whether the driver hands them over parsed or as text
type sqliteTime struct {
	Time time.Time
}

func (t *sqliteTime) Scan(v interface{}) error {
	switch v := v.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return errors.Errorf("can not scan %T into a time", v)
	}
	return nil
}

func (t *sqliteTime) parse(s string) error {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return errors.Errorf("can not parse time '%s'", s)
}

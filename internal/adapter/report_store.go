package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	m "github.com/gspu/critic/internal/model"
)

const reportFileName = "coverage.msgpack"

// ReportStore persists run reports so they can be viewed later.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.RunReport) error
	LoadReports(dir m.Path) ([]m.RunReport, error)
}

// FileReportStore keeps the latest run's reports as a single msgpack
// file under the reports directory.
type FileReportStore struct{}

// NewFileReportStore constructs a FileReportStore.
func NewFileReportStore() *FileReportStore {
	return &FileReportStore{}
}

// SaveReports writes the reports, creating the directory if needed.
func (s *FileReportStore) SaveReports(dir m.Path, reports []m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	raw, err := msgpack.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	path := filepath.Join(string(dir), reportFileName)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	return nil
}

// LoadReports reads back the latest persisted reports.
func (s *FileReportStore) LoadReports(dir m.Path) ([]m.RunReport, error) {
	path := filepath.Join(string(dir), reportFileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var reports []m.RunReport
	if err := msgpack.Unmarshal(raw, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	return reports, nil
}

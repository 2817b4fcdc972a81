// Package dataset reads the dashboard inputs from the local data directory.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

// Loader reads every input file by its configured name.
// It implements pipeline.Loader.
type Loader struct {
	incidents        string
	countyPopulation string
	schoolIncidents  string
	counties         string
	statePopulation  string
	logger           *slog.Logger
}

// NewLoader creates a Loader for the files named in cfg.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		incidents:        cfg.Path(cfg.IncidentsFile),
		countyPopulation: cfg.Path(cfg.CountyPopulationFile),
		schoolIncidents:  cfg.Path(cfg.SchoolIncidentsFile),
		counties:         cfg.Path(cfg.CountiesFile),
		statePopulation:  cfg.Path(cfg.StatePopulationFile),
		logger:           logger,
	}
}

// Load reads all datasets. A missing or malformed required file fails the load.
func (l *Loader) Load(ctx context.Context) (domain.Datasets, error) {
	var ds domain.Datasets

	err := readFile(l.incidents, func(r io.Reader) error {
		var err error
		ds.Incidents, ds.InvalidDates, err = ReadIncidents(l.incidents, r)
		return err
	})
	if err != nil {
		return domain.Datasets{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.Datasets{}, err
	}

	err = readFile(l.countyPopulation, func(r io.Reader) error {
		var err error
		ds.CountyPopulations, err = ReadCountyPopulations(l.countyPopulation, r)
		return err
	})
	if err != nil {
		return domain.Datasets{}, err
	}

	err = readFile(l.schoolIncidents, func(r io.Reader) error {
		var err error
		ds.SchoolIncidents, err = ReadSchoolIncidents(l.schoolIncidents, r)
		return err
	})
	if err != nil {
		return domain.Datasets{}, err
	}

	if l.statePopulation != "" {
		err = readFile(l.statePopulation, func(r io.Reader) error {
			var err error
			ds.StatePopulations, err = ReadStatePopulations(l.statePopulation, r)
			return err
		})
		if err != nil {
			return domain.Datasets{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return domain.Datasets{}, err
	}

	err = readFile(l.counties, func(r io.Reader) error {
		var err error
		ds.Counties, ds.CountiesCRS, err = ReadCounties(l.counties, r)
		return err
	})
	if err != nil {
		return domain.Datasets{}, err
	}

	l.logger.Debug("datasets loaded",
		"incidents", len(ds.Incidents),
		"invalid_dates", ds.InvalidDates,
		"school_incidents", len(ds.SchoolIncidents),
		"county_populations", len(ds.CountyPopulations),
		"state_populations", len(ds.StatePopulations),
		"counties", len(ds.Counties),
		"counties_crs", ds.CountiesCRS,
	)
	return ds, nil
}

func readFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return fn(f)
}

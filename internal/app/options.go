package service

import (
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/pitch"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSources sets the starting lineup and bench sources.
func WithSources(starting, bench roster.Source) Option {
	return func(s *Service) {
		s.starting = starting
		s.bench = bench
	}
}

// WithLayout replaces the default 3-4-3 pitch layout.
func WithLayout(layout pitch.Layout) Option {
	return func(s *Service) {
		if len(layout.Buckets) > 0 {
			s.layout = layout
		}
	}
}

// WithAttributes sets the skill columns used for correlation and the
// radar comparison.
func WithAttributes(attrs []model.Attribute) Option {
	return func(s *Service) {
		if len(attrs) > 0 {
			s.attributes = append([]model.Attribute(nil), attrs...)
		}
	}
}

// WithAgeBins sets the number of age histogram bins.
func WithAgeBins(bins int) Option {
	return func(s *Service) {
		if bins > 0 {
			s.ageBins = bins
		}
	}
}

// WithClubName sets the club name shown on the dashboard.
func WithClubName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.clubName = name
		}
	}
}

// WithImageBase sets the URL prefix of player images on cards.
func WithImageBase(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.imageBase = base
		}
	}
}

// WithGeoJSONURL sets the country boundary URL handed to map clients.
func WithGeoJSONURL(url string) Option {
	return func(s *Service) {
		s.geoJSONURL = url
	}
}

// WithExportSheet sets the worksheet name of exported workbooks.
func WithExportSheet(sheet string) Option {
	return func(s *Service) {
		if sheet != "" {
			s.exportSheet = sheet
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

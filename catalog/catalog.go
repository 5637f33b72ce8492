// Package catalog assembles the scene of every body in the system from its
// BodySpec, dynamic updaters, moons and reference wires.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"planetcloud/system"
)

// ErrUnknownBody is returned for names not in the catalog.
var ErrUnknownBody = errors.New("unknown body")

type builder func(seed int64) (*system.System, error)

type entry struct {
	name  string
	build builder
}

// Ordered outward from the star.
var entries = []entry{
	{"sun", buildSun},
	{"mercury", buildMercury},
	{"venus", buildVenus},
	{"earth", buildEarth},
	{"mars", buildMars},
	{"jupiter", buildJupiter},
	{"saturn", buildSaturn},
	{"uranus", buildUranus},
	{"neptune", buildNeptune},
}

var tracer trace.Tracer = otel.Tracer("planetcloud/catalog")

// Names lists every body, innermost first.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Has reports whether name is in the catalog.
func Has(name string) bool {
	for _, e := range entries {
		if e.name == name {
			return true
		}
	}
	return false
}

// Build constructs the named body's scene. The same seed always produces
// the same scene.
func Build(ctx context.Context, name string, seed int64) (*system.System, error) {
	_, span := tracer.Start(ctx, "catalog.Build",
		trace.WithAttributes(attribute.String("body", name), attribute.Int64("seed", seed)))
	defer span.End()

	for _, e := range entries {
		if e.name != name {
			continue
		}
		s, err := e.build(seed)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		span.SetAttributes(
			attribute.Int("clouds", len(s.Clouds)),
			attribute.Int("particles", s.Particles()),
			attribute.Int("moons", len(s.Body.Moons)),
		)
		return s, nil
	}

	err := fmt.Errorf("%w: %q", ErrUnknownBody, name)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

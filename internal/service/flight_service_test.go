package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/airline-reservation/internal/model"
)

func TestFlightTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{model.FlightScheduled, model.FlightBoarding, true},
		{model.FlightScheduled, model.FlightCancelled, true},
		{model.FlightScheduled, model.FlightCompleted, false},
		{model.FlightBoarding, model.FlightCompleted, true},
		{model.FlightBoarding, model.FlightCancelled, true},
		{model.FlightBoarding, model.FlightScheduled, false},
		{model.FlightCompleted, model.FlightBoarding, false},
		{model.FlightCompleted, model.FlightCancelled, false},
		{model.FlightCancelled, model.FlightScheduled, false},
		{model.FlightScheduled, "UNKNOWN", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, transitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

// Route validation runs before any repository access, so a nil-repo
// service is enough here.
func TestFlightCreateRejectsSameRoute(t *testing.T) {
	svc := NewFlightService(nil, nil, nil)

	for _, dest := range []string{"BOG", "bog", "Bog"} {
		_, err := svc.Create(context.Background(), CreateFlightInput{
			AircraftID:  1,
			Origin:      "BOG",
			Destination: dest,
		})
		assert.ErrorIs(t, err, model.ErrValidation, "destination %q", dest)
	}
}

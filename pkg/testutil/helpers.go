// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/hoff1997/budgetmate/pkg/debt"
	"github.com/hoff1997/budgetmate/pkg/envelope"
)

// FindEnvelopeHealth finds a health record by envelope name in a report's
// records. Returns a pointer to the record if found, nil otherwise.
func FindEnvelopeHealth(records []envelope.Health, name string) *envelope.Health {
	for i := range records {
		if records[i].Name == name {
			return &records[i]
		}
	}
	return nil
}

// FindPayoffEvent finds a payoff event by debt name in a simulation's payoff
// order. Returns a pointer to the event if found, nil otherwise.
func FindPayoffEvent(order []debt.PayoffEvent, name string) *debt.PayoffEvent {
	for i := range order {
		if order[i].Name == name {
			return &order[i]
		}
	}
	return nil
}

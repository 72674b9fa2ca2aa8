// Package game implements a single two-seat blackjack match.
//
// A Match pairs two Participants with a fresh deck and moves through
// NotStarted, InProgress and Resolved. Human turns are driven by the caller
// through Hit and Stand; computer turns are driven through Step (or Decide
// followed by Apply when the caller wants to pace moves), which consults
// the participant's Strategy.
//
// # Basic Usage
//
//	bus := game.NewEventBus()
//	m := game.NewMatch(id, alice, bob, deck.New(rng), game.WithEventBus(bus))
//	if err := m.Start(); err != nil {
//	    return err
//	}
//	for !m.IsResolved() {
//	    if m.Turn().IsHuman() {
//	        // read input, then m.Hit() or m.Stand()
//	        continue
//	    }
//	    if _, err := m.Step(); err != nil {
//	        return err
//	    }
//	}
//	res := m.Result()
//
// Every state change publishes a StateChangedEvent and resolution publishes
// exactly one MatchEndedEvent, so presentation layers only need to subscribe
// and re-read the match.
package game

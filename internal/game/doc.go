// Package game implements the repeated two-party bargaining game.
//
// A Game owns two players. Each round the player holding the proposer role
// names an offer, the other player accepts or rejects it, utilities are
// settled and control may pass to the other player with probability
// PCurrent. Rejections raise that probability by PRejectBump; acceptances
// reset it to PBase when PResetOnAccept is set.
//
// # Basic Usage
//
//	p1 := game.NewPlayer("Player 1", strategy.NewConcedingProposer(100, 10), strategy.NewUtilitarianResponder())
//	p2 := game.NewPlayer("Player 2", strategy.NewBinarySearchProposer(0, 100), strategy.NewTitForTatResponder())
//	g, err := game.New(p1, p2, game.DefaultConfig(), game.WithRand(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	g.Run(100)
//	history := g.History()
//
// # Strategies
//
// Strategies see the game only through View, an immutable snapshot of the
// configuration and the engine state. Optional behaviour is expressed by
// small capability interfaces: a Proposer that also implements
// FeedbackReceiver learns the outcome of its own offers, and one that
// implements OpponentObserver is shown every offer its opponent makes.
// Responders never receive feedback from the engine.
//
// # Deterministic Testing
//
// All engine randomness (role switches and penalty jitter) comes from the
// *rand.Rand supplied with WithRand. Strategies that need randomness take
// their own source at construction.
package game

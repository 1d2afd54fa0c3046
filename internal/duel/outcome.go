package duel

import "fmt"

// Outcome is the state of the match result.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomePlayer1Wins
	OutcomePlayer2Wins
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomePlayer1Wins:
		return "p1_victory"
	case OutcomePlayer2Wins:
		return "p2_victory"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Winner returns the victorious player, if there is exactly one.
func (o Outcome) Winner() (PlayerID, bool) {
	switch o {
	case OutcomePlayer1Wins:
		return Player1, true
	case OutcomePlayer2Wins:
		return Player2, true
	default:
		return 0, false
	}
}

// Banner is the end-of-match headline.
func (o Outcome) Banner() string {
	switch o {
	case OutcomePlayer1Wins, OutcomePlayer2Wins:
		id, _ := o.Winner()
		return fmt.Sprintf("Player %d Wins!", int(id))
	case OutcomeDraw:
		return "Mutual Destruction!"
	default:
		return ""
	}
}

// DetermineOutcome classifies a pair of health values. The match is over as
// soon as either side reaches zero.
func DetermineOutcome(p1Health, p2Health int) Outcome {
	switch {
	case p1Health <= 0 && p2Health <= 0:
		return OutcomeDraw
	case p1Health <= 0:
		return OutcomePlayer2Wins
	case p2Health <= 0:
		return OutcomePlayer1Wins
	default:
		return OutcomeInProgress
	}
}

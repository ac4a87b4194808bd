package game

// Tally computes the outcome of a closed voting slot. It is a pure
// function over the slot's submissions and votes and never touches
// session state.
//
// The submission with the strictly highest vote count wins; on a tie the
// earliest-created submission among the tied ones wins (subs must be in
// creation order). A slot with no votes has no winner and awards no
// points. A unanimous slot awards the flat bonus instead of per-vote
// points.
func Tally(slotID string, subs []Submission, votes map[string]string) RoundResult {
	counts := make(map[string]int, len(subs))
	for _, sub := range subs {
		counts[sub.ID] = 0
	}
	total := 0
	for _, submissionID := range votes {
		counts[submissionID]++
		total++
	}

	winnerID := ""
	winnerVotes := 0
	for _, sub := range subs {
		if n := counts[sub.ID]; n > winnerVotes {
			winnerID = sub.ID
			winnerVotes = n
		}
	}

	unanimous := total > 0 && winnerVotes == total
	points := 0
	switch {
	case winnerID == "":
	case unanimous:
		points = UnanimousBonus
	default:
		points = winnerVotes * PointsPerVote
	}

	return RoundResult{
		SlotID:              slotID,
		WinningSubmissionID: winnerID,
		IsUnanimous:         unanimous,
		PointsAwarded:       points,
		VoteCounts:          counts,
	}
}

package tokenomics

// ClampToTreasury caps the reward budget at what the treasury holds.
func ClampToTreasury(budget, treasuryBalance uint64) uint64 {
	return min(budget, treasuryBalance)
}

// SplitReward divides a reward budget between sender and recipient. The
// recipient takes the odd unit.
func SplitReward(budget uint64) (senderReward, recipientReward uint64) {
	senderReward = budget / 2
	recipientReward = budget - senderReward
	return senderReward, recipientReward
}

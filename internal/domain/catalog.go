package domain

// Catalog is the fixed five-level progression. Question counts, tiers, and
// unlock thresholds are tuned so a perfect run of every prior level is not
// required to keep advancing.
var Catalog = []Level{
	{Number: 1, Name: "Basic First Aid", Tier: TierEasy, Questions: 3, UnlockScore: 0, Icon: "heart"},
	{Number: 2, Name: "Emergency Response", Tier: TierMedium, Questions: 4, UnlockScore: 20, Icon: "star"},
	{Number: 3, Name: "Advanced Techniques", Tier: TierHard, Questions: 3, UnlockScore: 50, Icon: "cross"},
	{Number: 4, Name: "CPR Mastery", Tier: TierHard, Questions: 5, UnlockScore: 80, Icon: "pulse"},
	{Number: 5, Name: "Expert Level", Tier: TierHard, Questions: 5, UnlockScore: 120, Icon: "trophy"},
}

// MaxLevel is the highest level number in the catalog.
const MaxLevel = 5

// LevelByNumber looks up a catalog entry. An unknown number is a programming
// error on the caller's side since the catalog is fixed.
func LevelByNumber(n int) (Level, error) {
	if n < 1 || n > len(Catalog) {
		return Level{}, ErrLevelNotFound
	}
	return Catalog[n-1], nil
}

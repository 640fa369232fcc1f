package models

// Character is one tier of the cosmetic growth ladder. A student unlocks a
// character once their cumulative reward points reach MinPoints.
type Character struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	MinPoints int    `json:"min_points"`
}

// DefaultCharacter is what every new student starts with.
const DefaultCharacter = "🥚"

// Characters is the fixed unlock ladder, ordered by strictly increasing
// MinPoints.
var Characters = []Character{
	{Name: "알", Icon: "🥚", MinPoints: 0},
	{Name: "병아리", Icon: "🐥", MinPoints: 10},
	{Name: "햄스터", Icon: "🐹", MinPoints: 20},
	{Name: "고슴도치", Icon: "🦔", MinPoints: 30},
	{Name: "토끼", Icon: "🐰", MinPoints: 40},
	{Name: "고양이", Icon: "🐱", MinPoints: 50},
	{Name: "강아지", Icon: "🐶", MinPoints: 60},
	{Name: "거북이", Icon: "🐢", MinPoints: 70},
	{Name: "여우", Icon: "🦊", MinPoints: 80},
	{Name: "판다", Icon: "🐼", MinPoints: 90},
	{Name: "호랑이", Icon: "🐯", MinPoints: 100},
	{Name: "사자", Icon: "🦁", MinPoints: 110},
	{Name: "유니콘", Icon: "🦄", MinPoints: 120},
	{Name: "공룡", Icon: "🦖", MinPoints: 130},
	{Name: "용", Icon: "🐉", MinPoints: 140},
}

// UnlockedCharacters returns the prefix of the ladder available at the given
// reward point total. Stateless; recomputed on demand.
func UnlockedCharacters(rewardPoints int) []Character {
	unlocked := make([]Character, 0, len(Characters))
	for _, c := range Characters {
		if rewardPoints >= c.MinPoints {
			unlocked = append(unlocked, c)
		}
	}
	return unlocked
}

// CharacterUnlocked reports whether the character with the given icon is
// available at the given reward point total. Unknown icons are never
// unlocked.
func CharacterUnlocked(icon string, rewardPoints int) bool {
	for _, c := range Characters {
		if c.Icon == icon {
			return rewardPoints >= c.MinPoints
		}
	}
	return false
}

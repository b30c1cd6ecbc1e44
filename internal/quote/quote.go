package quote

import (
	"fmt"
	"math/rand"
)

// Quote is a short piece of encouragement and who said it.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (q Quote) String() string {
	return fmt.Sprintf("%q\n  - %s", q.Text, q.Author)
}

// All is the built-in collection.
var All = []Quote{
	{Text: "Mental health...is not a destination, but a process. It's about how you drive, not where you're going.", Author: "Noam Shpancer"},
	{Text: "You don't have to control your thoughts. You just have to stop letting them control you.", Author: "Dan Millman"},
	{Text: "Self-care is how you take your power back.", Author: "Lalah Delia"},
	{Text: "It's okay to not be okay. What's not okay is staying that way.", Author: "Unknown"},
	{Text: "Healing takes time, and asking for help is a courageous step.", Author: "Mariska Hargitay"},
	{Text: "What mental health needs is more sunlight, more candor, and more unashamed conversation.", Author: "Glenn Close"},
	{Text: "You are not your illness. You have an individual story to tell. You have a name, a history, a personality. Staying yourself is part of the battle.", Author: "Julian Seifter"},
	{Text: "There is hope, even when your brain tells you there isn't.", Author: "John Green"},
	{Text: "Your mental health is a priority. Your happiness is an essential. Your self-care is a necessity.", Author: "Unknown"},
	{Text: "Sometimes the people around you won't understand your journey. They don't need to, it's not for them.", Author: "Joubert Botha"},
	{Text: "You, yourself, as much as anybody in the entire universe, deserve your love and affection.", Author: "Buddha"},
	{Text: "Not all wounds are visible. Be kind always.", Author: "Unknown"},
	{Text: "Taking care of your mental and physical health is just as important as any career move or responsibility.", Author: "Mireille Guiliano"},
	{Text: "Happiness can be found even in the darkest of times, if one only remembers to turn on the light.", Author: "J.K. Rowling (via Dumbledore)"},
	{Text: "You don't have to have it all figured out to move forward.", Author: "Unknown"},
}

// Random picks any quote from All.
func Random(r *rand.Rand) Quote {
	return All[r.Intn(len(All))]
}

// Next picks a quote different from current so a rotation always changes
// what is on screen.
func Next(r *rand.Rand, current Quote) Quote {
	if len(All) < 2 {
		return Random(r)
	}
	for {
		q := Random(r)
		if q != current {
			return q
		}
	}
}

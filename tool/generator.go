package tool

import (
	"fmt"
	"math/rand"
)

// default alias generator, used when the config carries no alias.

var adjectives = []string{
	"Bright",
	"Calm",
	"Clever",
	"Cool",
	"Fast",
	"Fresh",
	"Gentle",
	"Kind",
	"Lucky",
	"Mystic",
	"Neat",
	"Quiet",
	"Rapid",
	"Smart",
	"Solid",
	"Swift",
	"Tidy",
	"Wise",
}

var fruits = []string{
	"Apple",
	"Banana",
	"Cherry",
	"Coconut",
	"Grape",
	"Lemon",
	"Mango",
	"Melon",
	"Orange",
	"Papaya",
	"Peach",
	"Pear",
	"Plum",
	"Raspberry",
	"Strawberry",
}

func NameGenerator() string {
	adjective := adjectives[rand.Intn(len(adjectives))]
	fruit := fruits[rand.Intn(len(fruits))]
	return fmt.Sprintf("%s %s", adjective, fruit)
}

package testutil

import "strings"

// Sample is a small slice of the real dataset: 54 items (three listing
// pages of 24, 24 and 6) with their categories.
var Sample = []string{
	"bulbasaur:grass,poison", "ivysaur:grass,poison", "venusaur:grass,poison",
	"charmander:fire", "charmeleon:fire", "charizard:fire,flying",
	"squirtle:water", "wartortle:water", "blastoise:water",
	"caterpie:bug", "metapod:bug", "butterfree:bug,flying",
	"weedle:bug,poison", "kakuna:bug,poison", "beedrill:bug,poison",
	"pidgey:normal,flying", "pidgeotto:normal,flying", "pidgeot:normal,flying",
	"rattata:normal", "raticate:normal",
	"spearow:normal,flying", "fearow:normal,flying",
	"ekans:poison", "arbok:poison",
	"pikachu:electric", "raichu:electric",
	"sandshrew:ground", "sandslash:ground",
	"nidoran-f:poison", "nidorina:poison", "nidoqueen:poison,ground",
	"nidoran-m:poison", "nidorino:poison", "nidoking:poison,ground",
	"clefairy:fairy", "clefable:fairy",
	"vulpix:fire", "ninetales:fire",
	"jigglypuff:normal,fairy", "wigglytuff:normal,fairy",
	"zubat:poison,flying", "golbat:poison,flying",
	"oddish:grass,poison", "gloom:grass,poison", "vileplume:grass,poison",
	"paras:bug,grass", "parasect:bug,grass",
	"venonat:bug,poison", "venomoth:bug,poison",
	"diglett:ground", "dugtrio:ground",
	"meowth:normal", "persian:normal",
	"psyduck:water",
}

// SampleCategories lists the categories of Sample in upstream order.
var SampleCategories = []string{
	"normal", "fighting", "flying", "poison", "ground", "rock", "bug", "ghost",
	"steel", "fire", "water", "grass", "electric", "psychic", "ice", "dragon",
	"dark", "fairy",
}

// SampleNames returns the item names of Sample in listing order.
func SampleNames() []string {
	out := make([]string, len(Sample))
	for i, entry := range Sample {
		out[i], _, _ = strings.Cut(entry, ":")
	}
	return out
}

// LoadSample fills the mock with the Sample dataset.
func (m *MockAPI) LoadSample() {
	members := make(map[string][]string)
	for _, entry := range Sample {
		name, tags, _ := strings.Cut(entry, ":")
		for _, tag := range strings.Split(tags, ",") {
			members[tag] = append(members[tag], name)
		}
	}

	m.AddItems(SampleNames()...)
	for _, category := range SampleCategories {
		m.AddCategory(category, members[category]...)
	}
}

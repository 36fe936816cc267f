package flowmodel

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	SingleSpecies Kind = iota
	FourEquation
	FiveEquation
)

var (
	KindNames = map[string]Kind{
		"single-species": SingleSpecies,
		"four-equation":  FourEquation,
		"five-equation":  FiveEquation,
	}
	KindPrintNames = []string{"Single Species", "Four Equation Mass Fraction", "Five Equation Volume Fraction"}
)

func (k Kind) Print() (txt string) {
	txt = KindPrintNames[k]
	return
}

func (k Kind) String() string { return k.Print() }

func NewKind(label string) (k Kind, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if k, ok = KindNames[label]; !ok {
		err = fmt.Errorf("unable to use flow model named %s", label)
	}
	return
}

package game

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const accessCodeLength = 6

var accessCodeCharset = append(append([]rune{}, lo.UpperCaseLettersCharset...), lo.NumbersCharset...)

type UniqueIdGenerator interface {
	Generate() string
}

type uuidGen struct{}

func (uuidGen) Generate() string {
	return uuid.NewString()
}

func NewIdGen() UniqueIdGenerator {
	return uuidGen{}
}

type accessCodeGen struct{}

func (accessCodeGen) Generate() string {
	return lo.RandomString(accessCodeLength, accessCodeCharset)
}

// NewAccessCodeGen returns a generator of 6 character A-Z0-9 codes.
func NewAccessCodeGen() UniqueIdGenerator {
	return accessCodeGen{}
}

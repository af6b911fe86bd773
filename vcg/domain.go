// SPDX-License-Identifier: MIT
// Package vcg: three-way variable domain classification.
//
// Classification is a static partition of the modeling layer's closed
// virtual-domain tag space; declared numeric bounds are never inspected.
// The mapping table is validated at package load against model.Domains(),
// so an unmapped tag is a build-time configuration error rather than a
// runtime branch.

package vcg

import (
	"fmt"

	"github.com/discretenet/discretenet/model"
)

// Domain is the classification bucket of a variable node.
type Domain string

const (
	// DomainContinuous covers real-valued virtual domains.
	DomainContinuous Domain = "continuous"
	// DomainInteger covers integer-valued virtual domains.
	DomainInteger Domain = "integer"
	// DomainBinary covers {0,1}-valued virtual domains.
	DomainBinary Domain = "binary"
)

// domainBuckets is the exhaustive tag → bucket table.
var domainBuckets = map[model.Domain]Domain{
	model.Any:                 DomainContinuous,
	model.Reals:               DomainContinuous,
	model.PositiveReals:       DomainContinuous,
	model.NonPositiveReals:    DomainContinuous,
	model.NegativeReals:       DomainContinuous,
	model.NonNegativeReals:    DomainContinuous,
	model.PercentFraction:     DomainContinuous,
	model.UnitInterval:        DomainContinuous,
	model.Integers:            DomainInteger,
	model.PositiveIntegers:    DomainInteger,
	model.NonPositiveIntegers: DomainInteger,
	model.NegativeIntegers:    DomainInteger,
	model.NonNegativeIntegers: DomainInteger,
	model.Boolean:             DomainBinary,
	model.Binary:              DomainBinary,
}

func init() {
	// Fail at load if the table ever drifts from the modeling layer's tag set.
	for _, tag := range model.Domains() {
		if _, ok := domainBuckets[tag]; !ok {
			panic(fmt.Sprintf("vcg: domain tag %s has no classification bucket", tag))
		}
	}
}

// classifyDomain maps a virtual-domain tag to its bucket. Tags outside the
// closed set return ErrUnrecognizedDomain.
func classifyDomain(tag model.Domain) (Domain, error) {
	b, ok := domainBuckets[tag]
	if !ok {
		return "", fmt.Errorf("tag %s: %w", tag, ErrUnrecognizedDomain)
	}
	return b, nil
}

package util

import (
	"math"

	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
)

const (
	// ResourceEpsilon is the minimum meaningful scalar difference; Mesos
	// internally uses a fixed point precision, see MESOS-4687.
	ResourceEpsilon float64 = 0.0009
)

// GetOfferScalar sums up the scalar values of the named resource across all
// roles in the offer. Offers without the resource yield zero.
func GetOfferScalar(offer *mesos.Offer, name string) float64 {
	var value float64
	for _, resource := range offer.GetResources() {
		if resource.GetName() != name || resource.GetScalar() == nil {
			continue
		}
		value += resource.GetScalar().GetValue()
	}
	return value
}

// IsZeroScalar returns whether a scalar value is smaller than the resource
// precision Mesos can represent.
func IsZeroScalar(value float64) bool {
	return math.Abs(value) < ResourceEpsilon
}

// ResourceBuilder helps to build a mesos resource.
type ResourceBuilder struct {
	resource mesos.Resource
}

// NewResourceBuilder creates a ResourceBuilder with the default role and a
// scalar type.
func NewResourceBuilder() *ResourceBuilder {
	defaultRole := "*"
	defaultType := mesos.Value_SCALAR
	return &ResourceBuilder{
		resource: mesos.Resource{
			Role: &defaultRole,
			Type: &defaultType,
		},
	}
}

// WithName sets name
func (b *ResourceBuilder) WithName(name string) *ResourceBuilder {
	b.resource.Name = &name
	return b
}

// WithRole sets role
func (b *ResourceBuilder) WithRole(role string) *ResourceBuilder {
	b.resource.Role = &role
	return b
}

// WithValue sets the scalar value
func (b *ResourceBuilder) WithValue(value float64) *ResourceBuilder {
	b.resource.Scalar = &mesos.Value_Scalar{Value: &value}
	return b
}

// Build returns the mesos resource
func (b *ResourceBuilder) Build() *mesos.Resource {
	res := b.resource
	return &res
}

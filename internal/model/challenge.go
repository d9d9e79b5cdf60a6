package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultChallengeVersion is the version a new challenge starts at.
const DefaultChallengeVersion = 1

// Challenge is a versioned, described task stored in the desafios collection.
//
// No route reads or writes challenges yet; the collection is only
// ensured at startup.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"nome" json:"nome" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Version     int                `bson:"version" json:"version" validate:"min=1"`
}

// NewChallenge returns a challenge at DefaultChallengeVersion.
func NewChallenge(name, description string) *Challenge {
	return &Challenge{
		Name:        name,
		Description: description,
		Version:     DefaultChallengeVersion,
	}
}

// Validate checks the required fields and applies the default version.
func (c *Challenge) Validate() error {
	if c.Version == 0 {
		c.Version = DefaultChallengeVersion
	}
	return validate.Struct(c)
}

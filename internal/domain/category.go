package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	CategoryLevelTop    = 1
	CategoryLevelSecond = 2
)

type Category struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Level            int                `bson:"level"`
	ParentCategoryID primitive.ObjectID `bson:"parentCategory,omitempty"`
}

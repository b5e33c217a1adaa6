// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model — one registered voter. Phone number is the natural lookup key
// and is immutable after signup.
type User struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName            string             `json:"fullName" bson:"fullName"`
	EpicNumber          string             `json:"epicNumber" bson:"epicNumber"`
	Age                 int                `json:"age" bson:"age"`
	DateOfBirth         string             `json:"dateOfBirth" bson:"dateOfBirth"`
	FatherName          string             `json:"fatherName" bson:"fatherName"`
	Gender              string             `json:"gender" bson:"gender"` // "Male", "Female", "Other"
	Phone               string             `json:"phone" bson:"phone"`
	Email               string             `json:"email" bson:"email"`
	AadharNumber        string             `json:"aadharNumber" bson:"aadharNumber"`
	State               string             `json:"state" bson:"state"`
	District            string             `json:"district" bson:"district"`
	Pincode             string             `json:"pincode" bson:"pincode"`
	Address             string             `json:"address" bson:"address"`
	Password            string             `json:"password,omitempty" bson:"password"`
	PhoneVerified       bool               `json:"phoneVerified" bson:"phoneVerified"`
	EmailVerified       bool               `json:"emailVerified" bson:"emailVerified"`
	IsActive            bool               `json:"isActive" bson:"isActive"`
	LastActivityAt      time.Time          `json:"lastActivityAt,omitempty" bson:"lastActivityAt,omitempty"`
	ResetPasswordToken  string             `json:"resetPasswordToken,omitempty" bson:"resetPasswordToken,omitempty"`
	ResetTokenExpiresAt time.Time          `json:"resetTokenExpiresAt,omitempty" bson:"resetTokenExpiresAt,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

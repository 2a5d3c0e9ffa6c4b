package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserInsert_HashesPasswordAndLowercasesEmail(t *testing.T) {
	setupTestDB(t)

	user := &User{
		Name:     "Alice",
		Email:    "  Alice@Example.EDU ",
		Password: "secret123",
		College:  "MIT",
		Branch:   "CSE",
		Semester: "3",
	}
	require.NoError(t, user.Insert())

	stored, err := GetUserById(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.edu", stored.Email)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestUserValidateAndFill(t *testing.T) {
	setupTestDB(t)
	seeded := seedUser(t, "bob", "MIT")

	login := &User{Email: seeded.Email, Password: "password123"}
	require.NoError(t, login.ValidateAndFill())
	assert.Equal(t, seeded.ID, login.ID)
	assert.Equal(t, "MIT", login.College)

	wrong := &User{Email: seeded.Email, Password: "wrongpass"}
	assert.Error(t, wrong.ValidateAndFill())

	missing := &User{Email: "nobody@example.edu", Password: "password123"}
	assert.Error(t, missing.ValidateAndFill())
}

func TestIsEmailAlreadyTaken(t *testing.T) {
	setupTestDB(t)
	seeded := seedUser(t, "carol", "MIT")

	assert.True(t, IsEmailAlreadyTaken(seeded.Email))
	assert.True(t, IsEmailAlreadyTaken("  "+seeded.Email+" "))
	assert.False(t, IsEmailAlreadyTaken("free@example.edu"))
}

func TestUserUpdate_DoesNotTouchResourceCollege(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, "dave", "Old College")
	resource := seedResource(t, user, "Algorithms Notes", PrivacyPrivate)

	user.College = "New College"
	require.NoError(t, user.Update(false))

	stored, err := GetResourceByID(resource.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old College", stored.College)
}

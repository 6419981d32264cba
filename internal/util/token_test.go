package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

func TestTokenManager(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		Convey("tokens round-trip the full claim set", t, func() {
			tm := NewTokenManager("test-secret", 1, 168)
			msg := JWTMessage{
				UserID:       42,
				TenantID:     7,
				Username:     "foreman",
				TenantName:   "acme-builders",
				RoleTenant:   model.RoleAdmin,
				RolePlatform: model.RoleUser,
			}

			accessToken, refreshToken, err := tm.CreateTokens(&msg)
			So(err, ShouldBeNil)
			So(accessToken, ShouldNotBeEmpty)
			So(refreshToken, ShouldNotBeEmpty)

			got, err := tm.CheckToken(accessToken)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, msg)

			got, err = tm.CheckToken(refreshToken)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, msg)
		})
	})

	t.Run("WrongSecret", func(t *testing.T) {
		Convey("a token signed with another secret fails verification", t, func() {
			tm := NewTokenManager("test-secret", 1, 168)
			other := NewTokenManager("other-secret", 1, 168)

			accessToken, _, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "u"})
			So(err, ShouldBeNil)

			_, err = other.CheckToken(accessToken)
			So(err, ShouldNotBeNil)
		})
	})

	t.Run("Garbage", func(t *testing.T) {
		Convey("malformed tokens are rejected", t, func() {
			tm := NewTokenManager("test-secret", 1, 168)
			_, err := tm.CheckToken("not.a.token")
			So(err, ShouldNotBeNil)
		})
	})
}

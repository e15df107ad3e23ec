package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("JWTTokenService", func() {
	var (
		tokens *JWTTokenService
		user   *User
	)

	ginkgo.BeforeEach(func() {
		tokens = NewJWTTokenService("token-suite-secret", time.Hour)
		inst := int64(7)
		user = &User{
			ID:                42,
			Email:             "teacher@school.id",
			Role:              RoleTeacher,
			InstitutionID:     &inst,
			Status:            StatusActive,
			IsPasswordChanged: true,
		}
	})

	ginkgo.It("should round-trip the identity claims", func() {
		token, err := tokens.Issue(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		claims, err := tokens.Verify(token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(claims.UserID).To(gomega.Equal("42"))
		gomega.Expect(claims.Email).To(gomega.Equal("teacher@school.id"))
		gomega.Expect(claims.Role).To(gomega.Equal("teacher"))
		gomega.Expect(*claims.InstitutionID).To(gomega.Equal(int64(7)))
		gomega.Expect(claims.IsPasswordChanged).To(gomega.BeTrue())
		gomega.Expect(claims.Subject).To(gomega.Equal("42"))
	})

	ginkgo.It("should never embed the password hash", func() {
		user.PasswordHash = "$2a$10$notsecret"
		token, err := tokens.Issue(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(token).ToNot(gomega.ContainSubstring("notsecret"))
	})

	ginkgo.It("should distinguish an expired token from an invalid one", func() {
		expired := NewJWTTokenService("token-suite-secret", -time.Minute)
		token, err := expired.Issue(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokens.Verify(token)
		gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
	})

	ginkgo.It("should reject a token signed with a different secret", func() {
		other := NewJWTTokenService("some-other-secret", time.Hour)
		token, err := other.Issue(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokens.Verify(token)
		gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
	})

	ginkgo.It("should reject a tampered token", func() {
		token, err := tokens.Issue(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		tampered := token[:len(token)-4] + "AAAA"
		_, err = tokens.Verify(tampered)
		gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
	})

	ginkgo.It("should reject the none algorithm", func() {
		claims := &Claims{
			UserID: "42",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Subject:   "42",
			},
		}
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokens.Verify(token)
		gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
	})

	ginkgo.It("should reject garbage", func() {
		_, err := tokens.Verify("not.a.token")
		gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
	})
})

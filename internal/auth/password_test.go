package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("PasswordPolicy", func() {
	var policy *PasswordPolicy

	ginkgo.BeforeEach(func() {
		policy = NewPasswordPolicy("School@123")
	})

	ginkgo.Describe("Validate", func() {
		ginkgo.It("should accept a password satisfying all five rules", func() {
			gomega.Expect(policy.Validate("Valid#Pass1")).To(gomega.BeEmpty())
			gomega.Expect(policy.IsValid("Valid#Pass1")).To(gomega.BeTrue())
		})

		ginkgo.It("should report every violated rule in check order", func() {
			violations := policy.Validate("ab")

			gomega.Expect(violations).To(gomega.Equal([]string{
				"Password must be at least 8 characters long",
				"Password must contain at least one uppercase letter",
				"Password must contain at least one number",
				"Password must contain at least one special character",
			}))
		})

		ginkgo.It("should report all five rules for the empty string", func() {
			gomega.Expect(policy.Validate("")).To(gomega.HaveLen(5))
		})

		ginkgo.It("should flag a missing lowercase letter", func() {
			violations := policy.Validate("PASS#123")
			gomega.Expect(violations).To(gomega.ConsistOf("Password must contain at least one lowercase letter"))
		})

		ginkgo.It("should flag a missing symbol", func() {
			violations := policy.Validate("Passw0rd")
			gomega.Expect(violations).To(gomega.ConsistOf("Password must contain at least one special character"))
		})

		ginkgo.It("should not treat a space as a special character", func() {
			violations := policy.Validate("Pass 1234")
			gomega.Expect(violations).To(gomega.ConsistOf("Password must contain at least one special character"))
		})

		ginkgo.It("should accept every character from the symbol set", func() {
			for _, symbol := range passwordSymbols {
				candidate := "Passw0rd" + string(symbol)
				gomega.Expect(policy.Validate(candidate)).To(gomega.BeEmpty(),
					"symbol %q should satisfy the special-character rule", symbol)
			}
		})

		ginkgo.It("should accept exactly eight characters", func() {
			gomega.Expect(policy.Validate("Abcdef1!")).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject seven characters", func() {
			gomega.Expect(policy.Validate("Abcde1!")).To(gomega.ConsistOf(
				"Password must be at least 8 characters long"))
		})
	})

	ginkgo.Describe("IsDefaultPassword", func() {
		ginkgo.It("should match the configured default exactly", func() {
			gomega.Expect(policy.IsDefaultPassword("School@123")).To(gomega.BeTrue())
		})

		ginkgo.It("should be case sensitive", func() {
			gomega.Expect(policy.IsDefaultPassword("school@123")).To(gomega.BeFalse())
		})

		ginkgo.It("should never match when no default is configured", func() {
			unset := NewPasswordPolicy("")
			gomega.Expect(unset.IsDefaultPassword("")).To(gomega.BeFalse())
		})
	})
})

package validation

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	internal "github.com/frahmantamala/school-management/internal"
)

func TestValidation(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Validation Suite")
}

var _ = ginkgo.Describe("ValidationBuilder", func() {
	ginkgo.It("should pass when all rules hold", func() {
		v := NewValidator()
		v.Field("email", "teacher@school.id").Required().Email().MaxLength(254)
		v.Field("role", "teacher").Required().OneOf("teacher", "parent", "student")

		gomega.Expect(v.Validate()).To(gomega.BeNil())
	})

	ginkgo.It("should collect one error per violated field", func() {
		v := NewValidator()
		v.Field("email", "not-an-email").Required().Email()
		v.Field("first_name", "").Required()

		err := v.Validate()
		gomega.Expect(err).ToNot(gomega.BeNil())
		gomega.Expect(err.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))

		details := err.Details.(internal.ValidationErrors)
		gomega.Expect(details.Errors).To(gomega.HaveLen(2))
	})

	ginkgo.It("should reject values outside a closed set", func() {
		v := NewValidator()
		v.Field("role", "principal").Required().OneOf("teacher", "parent", "student")

		gomega.Expect(v.Validate()).ToNot(gomega.BeNil())
	})

	ginkgo.It("should not double-report an empty optional field", func() {
		v := NewValidator()
		v.Field("email", "").Email().MaxLength(254)

		gomega.Expect(v.Validate()).To(gomega.BeNil())
	})
})

var _ = ginkgo.Describe("Helpers", func() {
	ginkgo.It("should validate emails", func() {
		gomega.Expect(ValidateEmail("teacher@school.id")).To(gomega.BeNil())
		gomega.Expect(ValidateEmail("")).ToNot(gomega.BeNil())
		gomega.Expect(ValidateEmail("not-an-email")).ToNot(gomega.BeNil())
	})

	ginkgo.It("should validate person names", func() {
		gomega.Expect(ValidatePersonName("first_name", "Sari")).To(gomega.BeNil())
		gomega.Expect(ValidatePersonName("first_name", "")).ToNot(gomega.BeNil())
	})
})

package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Authorizer", func() {
	var authz *Authorizer

	instA := int64(1)
	instB := int64(2)

	ginkgo.BeforeEach(func() {
		authz = NewAuthorizer(DefaultRoleHierarchy())
	})

	ginkgo.Describe("CanCreate", func() {
		ginkgo.It("should let a superadmin create every role except superadmin", func() {
			gomega.Expect(authz.CanCreate(RoleSuperadmin, RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleSuperadmin, RoleTeacher)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleSuperadmin, RoleParent)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleSuperadmin, RoleStudent)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleSuperadmin, RoleSuperadmin)).To(gomega.BeFalse())
		})

		ginkgo.It("should let an admin create only teacher, parent and student", func() {
			gomega.Expect(authz.CanCreate(RoleAdmin, RoleTeacher)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleAdmin, RoleParent)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleAdmin, RoleStudent)).To(gomega.BeTrue())
			gomega.Expect(authz.CanCreate(RoleAdmin, RoleAdmin)).To(gomega.BeFalse())
			gomega.Expect(authz.CanCreate(RoleAdmin, RoleSuperadmin)).To(gomega.BeFalse())
		})

		ginkgo.It("should give teacher, parent and student no creation rights", func() {
			for _, actor := range []Role{RoleTeacher, RoleParent, RoleStudent} {
				for _, target := range []Role{RoleSuperadmin, RoleAdmin, RoleTeacher, RoleParent, RoleStudent} {
					gomega.Expect(authz.CanCreate(actor, target)).To(gomega.BeFalse(),
						"%s should not create %s", actor, target)
				}
			}
		})
	})

	ginkgo.Describe("CanManage", func() {
		superadmin := &User{ID: 1, Role: RoleSuperadmin}
		adminA := &User{ID: 2, Role: RoleAdmin, InstitutionID: &instA}
		adminNoInst := &User{ID: 3, Role: RoleAdmin}
		teacherA := &User{ID: 4, Role: RoleTeacher, InstitutionID: &instA}
		teacherB := &User{ID: 5, Role: RoleTeacher, InstitutionID: &instB}

		ginkgo.It("should let a superadmin manage anyone", func() {
			gomega.Expect(authz.CanManage(superadmin, teacherA)).To(gomega.BeTrue())
			gomega.Expect(authz.CanManage(superadmin, teacherB)).To(gomega.BeTrue())
			gomega.Expect(authz.CanManage(superadmin, adminA)).To(gomega.BeTrue())
		})

		ginkgo.It("should keep an admin inside their institution", func() {
			gomega.Expect(authz.CanManage(adminA, teacherA)).To(gomega.BeTrue())
			gomega.Expect(authz.CanManage(adminA, teacherB)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny an admin without an institution", func() {
			gomega.Expect(authz.CanManage(adminNoInst, teacherA)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny an admin managing a target without an institution", func() {
			gomega.Expect(authz.CanManage(adminA, superadmin)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny every other role", func() {
			gomega.Expect(authz.CanManage(teacherA, teacherA)).To(gomega.BeFalse())
			gomega.Expect(authz.CanManage(teacherA, teacherB)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny nil actors and targets", func() {
			gomega.Expect(authz.CanManage(nil, teacherA)).To(gomega.BeFalse())
			gomega.Expect(authz.CanManage(superadmin, nil)).To(gomega.BeFalse())
		})
	})
})

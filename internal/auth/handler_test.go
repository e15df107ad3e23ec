package auth

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/school-management/internal/transport"
)

// stub ServiceAPI for handler tests
type stubService struct {
	loginResult *LoginResult
	loginErr    error
}

func (s *stubService) Login(dto LoginDTO) (*LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubService) ChangePassword(userID int64, dto ChangePasswordDTO) (*PasswordChangeResult, error) {
	return nil, ErrUserNotFound
}

func (s *stubService) AdminResetPassword(actor *User, dto AdminResetPasswordDTO) error {
	return ErrUserNotFound
}

func (s *stubService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return nil, ErrInvalidToken
}

func (s *stubService) GetActiveUser(id int64) (*User, error) {
	return nil, ErrUserInactive
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler *Handler
		stub    *stubService
		logBuf  *bytes.Buffer
	)

	ginkgo.BeforeEach(func() {
		stub = &stubService{}
		logBuf = &bytes.Buffer{}
		lg := slog.New(slog.NewTextHandler(logBuf, nil))
		handler = &Handler{
			BaseHandler: transport.NewBaseHandler(lg),
			Service:     stub,
		}
	})

	postLogin := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should answer 401 for invalid credentials", func() {
			stub.loginErr = ErrInvalidCredentials

			rec := postLogin(`{"email":"admin.a@school.id","password":"Wrong#Pass1","role":"admin"}`)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Invalid email, password, or role"))
		})

		ginkgo.It("should keep the submitted credentials out of the logs", func() {
			stub.loginErr = ErrInvalidCredentials

			postLogin(`{"email":"admin.a@school.id","password":"Wrong#Pass1","role":"admin"}`)

			gomega.Expect(logBuf.String()).ToNot(gomega.ContainSubstring("admin.a@school.id"))
			gomega.Expect(logBuf.String()).ToNot(gomega.ContainSubstring("Wrong#Pass1"))
		})

		ginkgo.It("should answer 500 for a storage failure, not 401", func() {
			stub.loginErr = errors.New("connection refused")

			rec := postLogin(`{"email":"admin.a@school.id","password":"Correct#Pass1","role":"admin"}`)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusInternalServerError))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("Invalid email, password, or role"))
		})

		ginkgo.It("should answer 400 for a malformed body", func() {
			rec := postLogin(`{`)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})
})

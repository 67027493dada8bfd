package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teacher-eval/backend/internal/service"
	pkgerrors "teacher-eval/backend/pkg/errors"
	"teacher-eval/backend/pkg/response"
)

// errorMapping HTTP status and business code of a service error
type errorMapping struct {
	err    error
	status int
	code   int
}

// serviceErrors business codes: 11xxx auth, 20xxx users, 30xxx cycles, 31xxx standards,
// 32xxx indicators, 33xxx witnesses, 34xxx submissions, 35xxx exports
var serviceErrors = []errorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, 11001},
	{service.ErrInvalidRefreshToken, http.StatusUnauthorized, 11002},
	{service.ErrOldPasswordMismatch, http.StatusBadRequest, 11003},
	{service.ErrPasswordUnchanged, http.StatusBadRequest, 11004},

	{service.ErrUserNotFound, http.StatusNotFound, 20001},
	{service.ErrEmailExists, http.StatusConflict, 20002},
	{service.ErrInvalidRole, http.StatusBadRequest, 20003},
	{service.ErrImportNoData, http.StatusBadRequest, 20004},
	{service.ErrImportTooManyRows, http.StatusBadRequest, 20005},
	{service.ErrImportBadHeader, http.StatusBadRequest, 20006},

	{service.ErrCycleNotFound, http.StatusNotFound, 30001},
	{service.ErrCycleDateInvalid, http.StatusBadRequest, 30002},
	{service.ErrCycleLocked, http.StatusConflict, 30003},

	{service.ErrStandardNotFound, http.StatusNotFound, 31001},
	{service.ErrWeightInvalid, http.StatusBadRequest, 31002},
	{service.ErrWeightTotalInvalid, http.StatusBadRequest, 31003},
	{service.ErrStandardsEmpty, http.StatusBadRequest, 31004},
	{service.ErrStandardsInUse, http.StatusConflict, 31005},

	{service.ErrIndicatorNotFound, http.StatusNotFound, 32001},
	{service.ErrIndicatorForbidden, http.StatusForbidden, 32002},
	{service.ErrCriterionNotFound, http.StatusNotFound, 32003},

	{service.ErrWitnessNotFound, http.StatusNotFound, 33001},
	{service.ErrWitnessEmpty, http.StatusBadRequest, 33002},
	{service.ErrWitnessTooLarge, http.StatusRequestEntityTooLarge, 33003},
	{service.ErrWitnessTypeNotAllowed, http.StatusUnsupportedMediaType, 33004},

	{service.ErrSubmissionNotFound, http.StatusNotFound, 34001},
	{service.ErrSubmissionEmpty, http.StatusBadRequest, 34002},
	{service.ErrSubmissionPending, http.StatusConflict, 34003},
	{service.ErrSubmissionNotPending, http.StatusConflict, 34004},

	{pkgerrors.ErrOptimisticLock, http.StatusConflict, 10006},
}

// handleServiceError writes the mapped response; unknown errors become 500
func handleServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.code, m.err.Error())
			return
		}
	}
	_ = c.Error(err)
	response.InternalError(c)
}

// bindError 400 for malformed input
func bindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	response.BadRequest(c, 10001, "بيانات الطلب غير صالحة")
}

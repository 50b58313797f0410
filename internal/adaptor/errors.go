package adaptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kweeen04/EandP/internal/usecase"
	"github.com/kweeen04/EandP/pkg/utils"
)

// respondError maps a service error kind to an HTTP status. Anything that is
// not a classified service error is logged and hidden behind a 500.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch svcErr.Kind {
	case usecase.KindValidation, usecase.KindAmountMismatch:
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, svcErr.Msg, nil)
	case usecase.KindNotFound:
		log.Warn(operation+" target not found", zap.Error(err))
		utils.ResponseNotFound(w, svcErr.Msg)
	case usecase.KindForbidden:
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, svcErr.Msg)
	case usecase.KindConflict:
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseJSON(w, http.StatusConflict, false, svcErr.Msg, nil, nil)
	case usecase.KindUpstream:
		log.Error(operation+" upstream failure", zap.Error(err))
		utils.ResponseJSON(w, http.StatusBadGateway, false, svcErr.Msg, nil, nil)
	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

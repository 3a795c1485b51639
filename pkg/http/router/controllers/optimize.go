package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type optimizerAPI struct {
	optimizeService OptimizeService
	log             *zap.Logger
}

func New(optimizeService OptimizeService, log *zap.Logger) *optimizerAPI {
	return &optimizerAPI{
		optimizeService: optimizeService,
		log:             log,
	}
}

func (api *optimizerAPI) Routes(group *helper.RouteGroup) {
	group.POST("/optimize", api.optimize)
	group.GET("/tree", api.tree)
}

func (api *optimizerAPI) optimize(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request optimizeRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.optimizeService.Optimize(r.Context(), request.toParams(), nil)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": newOptimizeResponse(request.Objective, res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *optimizerAPI) tree(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": treeResponse{NumberOfNodes: api.optimizeService.TreeSize()}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *optimizerAPI) validateRequest(request optimizeRequest) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

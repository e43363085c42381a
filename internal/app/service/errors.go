package service

import (
	"net/http"

	"github.com/ravindrad/journey-planner-service/internal/pkg/exception"
)

var ErrNoRouteAssembled = exception.New(http.StatusNotFound, "no feasible route assembled")

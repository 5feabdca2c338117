package tui

import "github.com/Aashishkr2003/FactFusion/internal/dashboard"

type hydratedMsg struct {
	result dashboard.Result
}

type refreshDoneMsg struct {
	result dashboard.Result
}

type openErrMsg struct {
	err error
}

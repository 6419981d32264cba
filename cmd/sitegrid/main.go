package main

import (
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/cmd/sitegrid/helper"
)

// @title						Sitegrid API
// @version						1.0.0
// @description					This is the API server for Sitegrid, a multi-tenant construction project management platform.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description					Call /v1/auth/login to obtain a token, then supply 'Bearer ${TOKEN}' to access protected routes
func main() {
	// Initialize configuration
	configInit := helper.NewConfigInitializer()
	backendConfig := configInit.GetBackendConfig()

	// Load debug environment if needed
	if err := configInit.LoadDebugEnvironment(); err != nil {
		klog.Fatalf("Failed to load env: %s", err)
	}

	// Initialize register config and dependencies
	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		klog.Fatalf("Failed to register config: %s\n", err)
	}

	serverRunner := helper.NewServerRunner(backendConfig)
	serverRunner.SetupLogger()

	// Background jobs (orphan edge cleanup, delayed project marking)
	sweep := configInit.StartSweeper()
	defer sweep.Stop()

	// Start HTTP server
	serverRunner.StartServer(registerConfig)
}

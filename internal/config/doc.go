// Package config loads the optional gasoline.hcl project file.
//
//	project                 = "acme"
//	resource_container_dirs = ["gasoline"]
//	exclude                 = ["*-template"]
//	node_binary             = env("GAS_NODE")
//
//	state {
//	  backend = "bolt"
//	  path    = "${project_root}/.gas/state.db"
//	}
//
// Expressions may use the project_root variable and the env() function.
package config

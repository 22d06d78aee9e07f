// Package config loads helpmatch settings with viper.
//
// Every setting has a default. A YAML file overrides the defaults and
// HELPMATCH_-prefixed environment variables override the file, with dots in
// the key replaced by underscores:
//
//	matching:
//	  top_k: 5
//	  weights:
//	    text: 0.6
//	    skill: 0.1
//
//	HELPMATCH_EMBEDDING_HOST=http://ollama:11434 helpmatch match REQ_1
package config

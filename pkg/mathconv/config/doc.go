/*
Package config loads Converter settings and CLI batch files.

# Overview

Settings describe how a Converter is built: its culture, the size of the
expression cache, whether metrics and tracing are recorded, the log level
and the path of the formula library. They are read from YAML or JSON and
decoded with weak typing, so hand-written files may quote numbers and
booleans:

	culture: de-DE
	cache_size: "512"
	metrics: "true"
	log_level: debug

# Loading

Files are read through an afero.Fs so callers and tests can substitute an
in-memory filesystem:

	s, err := config.Load(afero.NewOsFs(), "mathconv.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or from bytes and maps
	s, err = config.FromYAML(yamlBytes)
	s, err = config.FromJSON(jsonBytes)
	s, err = config.FromMap(map[string]any{"culture": "fr-FR"})

Every loader applies defaults for missing keys and validates the result.

# Batches

A batch file adds a list of cases to the settings. The CLI evaluates each
case and compares the displayed result with the expectation:

	culture: en-US
	cases:
	  - name: vat
	    formula: "x * 1.2"
	    inputs: [100]
	    expect: "120"
	  - name: guard
	    formula: "Throw(`nope`)"
	    error: nope
*/
package config

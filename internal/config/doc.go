// Package config loads the wellmech run configuration.
//
// # Configuration Sources
//
// Values are layered in this order, later layers winning:
//
//	1. Default()
//	2. the YAML file passed to Load
//	3. environment variables prefixed WELLMECH_
//
// Environment keys follow the section nesting:
//
//	WELLMECH_LOGGING_LEVEL=debug
//	WELLMECH_WELL_MUD_WEIGHT=8.95
//	WELLMECH_PIPELINE_POROSITY_METHOD=1
//	WELLMECH_PIPELINE_CURVES_INCLINATION=INC
//
// Sources are list-valued and can only be set from the file.
//
// # Example
//
//	well:
//	  name: Middleton Unit B 47-38 No. 8SH
//	  mud_weight: 8.95
//	  bit_area: 6
//	pipeline:
//	  curves:
//	    inclination: INC
//	sources:
//	  - name: edr
//	    path: edr.las
//	    format: las
//	    detect_header: true
//	    curves:
//	      - {curve: TVD, column: 0}
//	      - {curve: ROP, column: 3}
//	output:
//	  path: out/curves.xlsx
//	  format: xlsx
//
// Relative paths in the file are resolved against the file's directory.
// Validation uses go-playground/validator struct tags; failures are
// CONFIGURATION errors naming the offending field.
package config

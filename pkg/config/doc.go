/*
Package config loads pdfops settings from a file, a .env file and the environment.

	+-----------+    +-----------+    +-----------+
	|   .env    | -> |  config   | -> | PDFOPS_*  |
	| godotenv  |    |   file    |    | overrides |
	+-----------+    +-----+-----+    +-----------+
	                       |
	        +--------------+--------------+
	        |              |              |
	   +----+----+    +----+----+    +----+----+
	   |  YAML   |    |   HCL   |    |  JSON   |
	   +---------+    +---------+    +---------+

🎯 Purpose:
- Picks a parser by file extension through the parser registry
- Fills defaults and rejects bad values in Validate
- Carries batch jobs for `pdfops run`

🔄 Flow:
1. Resolve loads .env from the working directory (existing variables win)
2. The first of DefaultFiles found is parsed, or defaults are used
3. PDFOPS_* variables override file values
4. Validate runs once more on the merged result

📝 Keys:

	output.atomic               stage outputs and rename into place (default true)
	rotate.angle                default rotation (90)
	selection.probe_concurrency parallel file probes (4)
	logging.level|format|file   zerolog level, console or json, rotating log file
	metrics.textfile            node exporter textfile
	update.owner|repo           release check source (walteh/pdfops)
	jobs[]                      {name, operation, inputs, output, angle}

HCL files declare jobs as labeled blocks and can read PDFOPS_* variables:

	job "monthly" {
	  operation = "merge"
	  inputs    = ["in/*.pdf"]
	  output    = env.PDFOPS_OUT
	}
*/
package config

/*
Package operation implements the document operation pipeline.

	+-----------+     +-----------+     +-----------+     +-----------+
	| Selection | --> | Validator | --> |  Engine   | --> | Reporter  |
	|  (files)  |     |  (Plan)   |     | (runner)  |     | (status)  |
	+-----------+     +-----------+     +-----+-----+     +-----------+
	                                          |
	                                    +-----+-----+
	                                    |   Codec   |
	                                    +-----------+

🎯 Purpose:
- Holds the registry of the six operations and their input contracts
- Gates a selection snapshot plus parameters before any file is touched
- Runs the transformation against the document codec
- Produces a uniform Outcome for the reporter

🔄 Flow:
1. The caller picks the active operation (Operator.SetActiveOperation)
2. Files are staged and unstaged (AddFiles, RemoveFiles)
3. Execute snapshots the selection and hands it to the Engine
4. Validate returns a Plan or a typed failure
5. The operation built from the Plan writes through a status.Stager
6. The Outcome and error go to the recorder and notifier

📜 Operations:

	ID              input     count         target
	merge           document  one or more   file
	split           document  exactly one   directory
	convert-images  image     one or more   file
	compress        document  exactly one   file
	extract-images  document  exactly one   directory
	rotate          document  exactly one   file

🚦 States:

	Idle → Validated → Executing → Succeeded | Failed → Idle

A validation failure goes straight from Idle to Failed. There are no retries;
the selection survives a failure so the caller can run again.

🔍 Example:

	op, err := operation.New(ctx, operation.Options{
		Documents: pdfcodec.New(),
		Images:    imagecodec.New(),
		Atomic:    true,
	})
	op.SetActiveOperation(ctx, operation.Merge)
	op.AddFiles(ctx, []string{"a.pdf", "b.pdf"})
	outcome, err := op.Execute(ctx, operation.Params{Target: status.FileTarget("out.pdf")})
*/
package operation

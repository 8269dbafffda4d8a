/*
Package status publishes run outputs and reports run results for pdfops.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+           +------+------+
	|   Stager   |           |  Reporter   |
	| (outputs)  |           |  (UI/UX)    |
	+------------+           +-------------+

🎯 Purpose:
- Decides where a transformation writes and publishes its outputs
- Describes run results (Outcome) and maps them to display text (Report)
- Emits user facing notifications while mirroring them to zerolog

🔄 Flow:
1. Stager.Begin picks a write location for the target
2. The transformation writes into Staged.Path or Staged.File(name)
3. Commit renames staged files into place, Abort discards them
4. NewReport turns the Outcome or error into {OK, Text}
5. A Notifier shows the report

⚡ Atomic publishing:
With atomic staging on, single file outputs are written inside a hidden
".pdfops-stage-*" directory next to the target and renamed over it on Commit.
Directory outputs are staged in a hidden directory inside the output directory
and moved out only after every file was written. A failed run leaves the
target untouched.

🤝 Interfaces:
- Formatter: renders outputs, skips, progress and errors into log messages
- Notifier: OperationSelected, FilesAdded, FilesRemoved, ExecutionStarted, ExecutionFinished

🔍 Example:

	stager := status.NewStager(true)
	staged, err := stager.Begin(ctx, status.DirTarget("out"))
	if err != nil {
		return err
	}
	defer staged.Abort(ctx)

	if err := doc.Write(staged.File("report_page_1.pdf")); err != nil {
		return err
	}
	outputs, err := staged.Commit(ctx)
*/
package status

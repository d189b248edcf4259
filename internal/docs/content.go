package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with appgen",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "blocks",
		Title:   "Code Blocks and Filenames",
		Summary: "How assistant answers become files on disk",
		Content: topicBlocks,
	},
	{
		Name:    "backends",
		Title:   "Assistant Backends",
		Summary: "CLI, Gemini, and OpenAI backends and their settings",
		Content: topicBackends,
	},
	{
		Name:    "runners",
		Title:   "Running Apps",
		Summary: "How Python, Streamlit, HTML, and C++ apps are launched",
		Content: topicRunners,
	},
	{
		Name:    "registry",
		Title:   "App Registry",
		Summary: "apps_registry.json, backups, and exports",
		Content: topicRegistry,
	},
}

const topicQuickstart = `QUICK START

appgen turns a one-line description into a runnable app by asking a
code-generation assistant and writing the fenced code blocks of its answer
to disk.

1. Initialize a project:

     appgen init

   This creates .appgen/config.yaml and a .env template for API keys.

2. Check the environment:

     appgen doctor

   The assistant and the registry must be available. Missing interpreters
   only limit which apps can be run.

3. Open the studio:

     appgen

   The main menu offers Create New App, View/Run Apps, Refine Existing App,
   and Exit. Every menu also accepts its number when stdin is not a
   terminal.

4. Or work from the command line:

     appgen new "a pomodoro timer" --lang Python --name pomodoro
     appgen list
     appgen run pomodoro
     appgen refine pomodoro "add a pause button"

Apps are referenced by name, full id, or a unique id prefix.
`

const topicConfig = `CONFIGURATION REFERENCE

The config lives at .appgen/config.yaml in the project root. appgen finds
the root by walking up from the current directory. Every key is optional.

  apps-dir            Directory new apps are written under (default ".")
  registry            Registry file, relative to the root
                      (default "apps_registry.json")
  log-file            Structured log file (default ".appgen/appgen.log");
                      empty disables logging
  default-ext         Extension for single-file apps whose language has no
                      known extension (default ".py")
  allow-unsafe-paths  Allow block filenames that escape the app directory
                      (default false)

  assistant:
    backend           cli, gemini, or openai (default cli)
    command           Binary for the cli backend (default "gh")
    args              Arguments; $PROMPT and $MODEL are substituted
    model             Model name; each API backend has its own default
    timeout           Minutes before a call is abandoned (default 10)

  runners:
    python            Python interpreter (default "python3")
    streamlit         Streamlit launcher (default "streamlit")
    compiler          C++ compiler (default "g++")
    online-cpp        Fall back to Programiz when compiling fails
    headless          Drive the online compiler without a visible window

  context:
    max-files         Files sent as chat context (default 3)
    max-bytes         Bytes per file sent as chat context (default 2000)

  export:
    dir               Where ZIP exports are written (default "exports")
    bucket            Optional S3-compatible bucket for uploads
    endpoint          host:port of the object store
    region            Bucket region (default "us-east-1")
    use-ssl           Use HTTPS for the object store (default true)

ENVIRONMENT

  APPGEN_BACKEND        Overrides assistant.backend
  APPGEN_MODEL          Overrides assistant.model
  GEMINI_API_KEY        Gemini key (GOOGLE_API_KEY is also accepted)
  OPENAI_API_KEY        OpenAI key
  APPGEN_S3_ACCESS_KEY  Object store access key
  APPGEN_S3_SECRET_KEY  Object store secret key

A .env file in the project root is loaded on startup. Variables already
set in the environment win.
`

const topicBlocks = `CODE BLOCKS AND FILENAMES

The assistant answers in markdown. appgen keeps only the fenced code
blocks and ignores the prose around them.

NAMING A BLOCK

A marker line names the block that follows it:

  ### filename: app.py
  ` + "```" + `python
  print("hello")
  ` + "```" + `

Only blank lines may sit between the marker and the opening fence. A
file=<name> token in the info string works too:

  ` + "```" + `yaml file=config.yaml

A fence that closes on the same line, or whose info string is a sentence
rather than a language tag, is treated as prose.

LAYOUT ON DISK

  One block, simple app   <apps-dir>/<name>/<name><ext>, where the
                          extension follows the requested language
  Several blocks or a     <apps-dir>/<name>/<filename> per block;
  complex app             unnamed blocks become file_<n><ext>

Filenames may contain subdirectories. Absolute paths and names that climb
out of the app directory are rejected unless allow-unsafe-paths is set.

TRUNCATED ANSWERS

When the answer ends inside an open fence, the completed blocks are kept
and a warning is shown.

REFINING

Refine and chat rewrite an existing app. For multi-file apps only blocks
carrying a filename are written. For single-file apps the first block
replaces the file. A backup is taken before anything is overwritten.

The same extraction is available offline:

  appgen extract answer.md --out ./out --name demo
`

const topicBackends = `ASSISTANT BACKENDS

CLI (default)

  The prompt is passed as a single argument to a local command. The
  defaults run the GitHub Copilot CLI:

    assistant:
      backend: cli
      command: gh
      args: [copilot, -p, $PROMPT, --silent]

  Any tool that prints its answer on stdout works. A non-zero exit, an
  empty answer, or the timeout is reported as a generation error.

GEMINI

    assistant:
      backend: gemini
      model: gemini-2.5-flash

  Requires GEMINI_API_KEY.

OPENAI

    assistant:
      backend: openai
      model: gpt-4o-mini

  Requires OPENAI_API_KEY.

MULTI-AGENT MODE

appgen new --multi-agent (or the studio's Multi-Agent option) first asks an
architect prompt for a plan, then generates the code from the plan, then
runs a review pass. If the architect call fails a standard plan is used.
`

const topicRunners = `RUNNING APPS

appgen runs the app's primary file and picks the runner from its
extension; the language only decides files with an unknown extension. For
directories the main file is the first main.* or index.* among files of
the app's language, else the first such file.

PYTHON

  A "# requirements: pkg1, pkg2" comment is installed with pip first; a
  failed install is only a warning. Files importing streamlit are started
  with "streamlit run", everything else with the configured interpreter.

HTML

  The file is opened in the default browser.

C++

  The main file is compiled with the configured compiler and the binary is
  run. When compiling fails and online-cpp is set, the code is pasted into
  the Programiz online compiler through a browser session. If that fails
  too, the Programiz page is opened so the code can be pasted by hand.

OTHER LANGUAGES

  appgen reports that no runner is available. The files stay on disk.

Generated code is not sandboxed. appgen shows a warning before every run.
`

const topicRegistry = `APP REGISTRY

Every saved app is recorded in apps_registry.json with its id, name,
description, language, main path, feature list, creation time, and the
original request (query, color scheme, architecture, extras). Regenerate
replays that request.

The file is rewritten atomically. A missing file is an empty registry.

BACKUPS

  appgen backup <app> copies a directory to <dir>_backup_<unix> or a file
  to <file>.bak_<unix>, adding _1, _2, ... when that name is taken. Refine, chat, and regenerate back up first.

EXPORTS

  appgen export <app> writes app_export_<unix>.zip to the export dir. When
  export.bucket is configured, the archive is also uploaded and its URL
  printed.
`

// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PluginsRootNotFoundId Id = iota + 1
	DescriptorNotFoundId
	DescriptorParseErrorId
	BundleOpenFailedId
	AssetDefinitionInvalidId
	AssetNotFoundId
	ConfigLoadFailedId
	DependencyCycleId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	pluginsRootNotFoundIssue = &Issue{
		id: PluginsRootNotFoundId,
		mdMsg: `
# Plugins root not found!

The directory that should hold your mods does not exist or is not readable.

## Things you can try:
- Point atlysstools at an existing directory:
~~~
$ atlysstools list --plugins-root /path/to/plugins
~~~

- Or pin it in your workspace file (atlysstools.toml):
~~~toml
plugins_root = "./plugins"
~~~

- Or in your user config:
~~~cue
plugins_root: "/path/to/plugins"
~~~`,
	}

	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# No mod descriptor found!

We looked for an AtlyssTools.json descriptor but the directory doesn't have one.

## A mod directory looks like:
~~~
my-mod/
├── AtlyssTools.json
└── Assets/
    ├── sword.json
    └── com.example.mymod.bundle
~~~

## Things you can try:
- Scaffold a new mod in the current directory:
~~~
$ atlysstools init my-mod
~~~

- Check that you are pointing at the mod's root directory, not its Assets/ subdirectory`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# Failed to parse mod descriptor!

The AtlyssTools.json descriptor contains syntax errors or invalid fields.

## Common issues:
- Invalid JSON syntax (trailing commas, missing quotes)
- Missing required fields: ModId, ModName
- ModId not matching the allowed pattern (letters, digits, '.', '_', '-'; must start with a letter)

## Things you can try:
- Check the error message above for the specific field
- Validate the descriptor:
~~~
$ atlysstools validate /path/to/mod
~~~

## Example of a valid descriptor:
~~~json
{
  "ModId": "com.example.swords",
  "ModName": "Extra Swords",
  "Version": "1.0.0",
  "Dependencies": ["com.example.core"]
}
~~~`,
	}

	bundleOpenFailedIssue = &Issue{
		id: BundleOpenFailedId,
		mdMsg: `
# Failed to open asset bundle!

An asset container in the mod's Assets directory could not be opened.

## Common causes:
- The file is not a valid zip archive
- The file is truncated or still being written
- The container name doesn't follow RDNS naming (e.g., com.example.swords)

## Things you can try:
- Rebuild the bundle from your asset pipeline
- Verify the archive opens with a zip tool
- Remember that *.manifest files are host metadata, not bundles`,
	}

	assetDefinitionInvalidIssue = &Issue{
		id: AssetDefinitionInvalidId,
		mdMsg: `
# Invalid asset definition!

A JSON definition file under Assets/ failed schema validation for its category.

## Common issues:
- Missing or unknown "category" tag (valid: weapon, armor, skill, creep, statuscondition)
- Missing required fields for the category (e.g., "damage" for weapons)
- Values outside the allowed range (e.g., negative damage)

## Things you can try:
- Run the validator for field-level errors:
~~~
$ atlysstools validate /path/to/mod
~~~

## Example of a valid weapon definition:
~~~json
{
  "category": "weapon",
  "name": "iron-sword",
  "displayName": "Iron Sword",
  "damage": 10,
  "icon": "icons/iron-sword.png"
}
~~~`,
	}

	assetNotFoundIssue = &Issue{
		id: AssetNotFoundId,
		mdMsg: `
# Asset not found!

The asset reference could not be resolved in any loaded mod or the host catalog.

## Reference forms:
- **Qualified**: ` + "`modid:asset-name`" + ` — looks only in that mod
- **Unqualified**: ` + "`asset-name`" + ` — tries every mod in load order, then the host's own assets

## Things you can try:
- List what actually loaded:
~~~
$ atlysstools list
~~~

- Check for typos in the mod id or asset name (both are case-insensitive)
- Run 'atlysstools dump' and inspect the asset listing`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the atlysstools configuration.

## Configuration file locations:
- Linux: ~/.config/atlysstools/config.cue
- macOS: ~/Library/Application Support/atlysstools/config.cue
- Windows: %APPDATA%\atlysstools\config.cue
- Project: ./atlysstools.toml (overrides the user-level file)

## Things you can try:
- Create a default configuration:
~~~
$ atlysstools config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
plugins_root: "/home/user/atlyss/plugins"
diagnostics_dir: "./diagnostics"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Mod dependency cycle detected!

Mod descriptors declare dependencies that form a cycle, so no valid load
order exists. The mods in the cycle were skipped; everything else loaded.

## Example of a cycle:
~~~json
// a/AtlyssTools.json
{ "ModId": "a", "ModName": "A", "Dependencies": ["b"] }
// b/AtlyssTools.json
{ "ModId": "b", "ModName": "B", "Dependencies": ["a"] }
~~~

## Things you can try:
- Review the Dependencies fields of the mods named above
- Remove the circular dependency
- Use a linear dependency chain instead`,
	}

	issues = map[Id]*Issue{
		pluginsRootNotFoundIssue.Id():    pluginsRootNotFoundIssue,
		descriptorNotFoundIssue.Id():     descriptorNotFoundIssue,
		descriptorParseErrorIssue.Id():   descriptorParseErrorIssue,
		bundleOpenFailedIssue.Id():       bundleOpenFailedIssue,
		assetDefinitionInvalidIssue.Id(): assetDefinitionInvalidIssue,
		assetNotFoundIssue.Id():          assetNotFoundIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		dependencyCycleIssue.Id():        dependencyCycleIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

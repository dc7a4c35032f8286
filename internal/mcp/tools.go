package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

const categoriesHelp = "Category name(s): a string (comma or semicolon separated) or an array of strings. Case-insensitive."

var queryToolDef = mcp.NewTool("vcard_query",
	mcp.WithDescription("Select contacts from one or more vCard files. All given filters must hold; "+
		"exclude is checked first, include matches any listed category, required matches all of them. "+
		"Missing files are skipped and reported."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithArray("files", mcp.Required(), mcp.WithStringItems(), mcp.Description("vCard file paths, scanned in order")),
	mcp.WithAny("include", mcp.Description("Any-of categories. "+categoriesHelp)),
	mcp.WithAny("required", mcp.Description("All-of categories. "+categoriesHelp)),
	mcp.WithAny("exclude", mcp.Description("None-of categories. "+categoriesHelp)),
	mcp.WithArray("search_names", mcp.WithStringItems(), mcp.Description("Case-insensitive name substrings; a contact matches if its name contains any of them")),
	mcp.WithArray("names", mcp.WithStringItems(), mcp.Description("Exact (case-insensitive) names to allow")),
	mcp.WithString("name_file", mcp.Description("File of newline-separated names to allow")),
	mcp.WithBoolean("include_text", mcp.Description("Include the raw vCard text of each contact (default: false)")),
)

var countToolDef = mcp.NewTool("vcard_count",
	mcp.WithDescription("Count category occurrences across vCard files. A contact listing a category twice counts twice."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithArray("files", mcp.WithStringItems(), mcp.Description("vCard file paths; missing files are skipped")),
)

var deleteToolDef = mcp.NewTool("vcard_delete",
	mcp.WithDescription("Remove contacts by name from a vCard file, or strip them down to selected fields with keep. "+
		"Without names, name_file or all nothing is changed."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithString("path", mcp.Required(), mcp.Description("vCard file to rewrite")),
	mcp.WithArray("names", mcp.WithStringItems(), mcp.Description("Contact names to target (case-insensitive, exact)")),
	mcp.WithString("name_file", mcp.Description("File of newline-separated names to target")),
	mcp.WithBoolean("all", mcp.Description("Target every contact in the file")),
	mcp.WithArray("keep", mcp.WithStringEnumItems([]string{"name", "number", "photo", "category"}),
		mcp.Description("Strip targets to these fields instead of removing them")),
	mcp.WithString("out", mcp.Description("Write the result here instead of overwriting path")),
)

var diffToolDef = mcp.NewTool("vcard_diff",
	mcp.WithDescription("List contacts that have category a but not category b, with the counts of both."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("a", mcp.Required(), mcp.Description("Category the contact must have")),
	mcp.WithString("b", mcp.Required(), mcp.Description("Category the contact must not have")),
	mcp.WithArray("files", mcp.Required(), mcp.WithStringItems(), mcp.Description("vCard file paths, scanned in order")),
	mcp.WithBoolean("include_text", mcp.Description("Include the raw vCard text of each contact (default: false)")),
)

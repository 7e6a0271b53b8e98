package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFiles embed.FS

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	entries, err := localeFiles.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, entry := range entries {
		data, err := localeFiles.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("error reading locale file %s: %w", entry.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", entry.Name(), err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[config_command_usage]
	other = "Manage credentials and preferences"

	[config_set_usage]
	other = "Set a configuration value (gemini_api_key, github_token, lang)"

	[config_show_usage]
	other = "Show the current configuration with masked keys"

	[config_saved]
	other = "Configuration saved"

	[config_unknown_key]
	other = "Unknown configuration key: {{.Key}}"

	[sources_command_usage]
	other = "Discover and select the accounts repositories are filed from"

	[sources_load_usage]
	other = "Load your user and organizations from GitHub"

	[sources_list_usage]
	other = "List loaded accounts and their selection state"

	[sources_select_usage]
	other = "Select an account and rebuild the repository list"

	[sources_deselect_usage]
	other = "Deselect an account and rebuild the repository list"

	[sources_loaded]
	one = "Loaded {{.Count}} account"
	other = "Loaded {{.Count}} accounts"

	[sources_none_found]
	other = "No accounts found"

	[sources_not_loaded]
	other = "Account '{{.Login}}' is not loaded. Run: thoth sources load"

	[sources_repos_updated]
	one = "{{.Count}} repository available from selected sources"
	other = "{{.Count}} repositories available from selected sources"

	[sources_truncated]
	other = "Repository listing for '{{.Login}}' was truncated at {{.Limit}} pages"

	[repos_command_usage]
	other = "List the repositories issues can be filed into"

	[repos_list_usage]
	other = "List the repositories from the local state"

	[repos_none]
	other = "No repositories. Select sources first: thoth sources load"

	[capture_command_usage]
	other = "Create an issue from captured page content"

	[capture_flag_repo]
	other = "Target repository (owner/name)"

	[capture_flag_snapshot]
	other = "Page snapshot file produced by the browser helper ('-' for stdin)"

	[capture_flag_text]
	other = "Selected text carried by the trigger"

	[capture_flag_image]
	other = "Image URL carried by the trigger"

	[capture_flag_page_url]
	other = "URL of the source page"

	[capture_unknown_repo]
	other = "Repository '{{.Repo}}' is not in your repository list"

	[pipeline_processing]
	other = "Creating issue in {{.Repo}}..."

	[pipeline_gathering]
	other = "Gathering page content..."

	[pipeline_publishing_asset]
	other = "Publishing image to the repository..."

	[pipeline_resolving_template]
	other = "Looking for an issue template..."

	[pipeline_synthesizing]
	other = "Generating issue content..."

	[pipeline_publishing_issue]
	other = "Creating the issue..."

	[pipeline_success]
	other = "Issue created: {{.URL}}"

	[pipeline_setup_required]
	other = "Setup required: configure your API keys and repositories first"

	[pipeline_no_content]
	other = "No content: select text or right-click an image, then trigger again"

	[pipeline_image_fallback]
	other = "Image upload failed; the issue references the original external URL"

	[ui_error.try_suggestion]
	other = "Try: "
	`

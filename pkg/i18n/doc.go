// Package i18n translates message keys loaded from YAML catalogs and picks the
// best supported language for a request.
//
// Catalog files hold one root key per language with nested messages:
//
//	en:
//	  validation:
//	    email:
//	      required: "E-mail is required"
//
// Keys are addressed with dots ("validation.email.required") and templates use
// named placeholders in the form %{name}.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	lang := tr.Match(r.Header.Get("Accept-Language"))
//	msg := tr.T(lang, "validation.name.min_length", "min", "4")
//
// Language negotiation uses golang.org/x/text/language so regional variants
// ("pt-PT", "en-GB") resolve to the closest catalog.
package i18n

package interp

import "escprender/internal/token"

// buildDispatch builds the Command -> handler table once per Interpreter.
// Every Command string internal/token can emit must have an entry here; a missing one means a
// command the tokenizer recognizes would silently no-op instead of being
// logged as unsupported.
func (it *Interpreter) buildDispatch() map[string]func(*Interpreter, token.Token) error {
	return map[string]func(*Interpreter, token.Token) error{
		// Single-byte controls.
		"beeper":                     (*Interpreter).hBeeper,
		"backspace":                  (*Interpreter).hBackspace,
		"h_tab":                      (*Interpreter).hHorizontalTab,
		"line_feed":                  (*Interpreter).hLineFeed,
		"v_tab":                      (*Interpreter).hVerticalTab,
		"form_feed":                  (*Interpreter).hFormFeed,
		"carriage_return":            (*Interpreter).hCarriageReturn,
		"cancel_line":                (*Interpreter).hCancelLine,
		"delete_last_char_in_buffer": (*Interpreter).hDeleteLastCharInBuffer,
		"text":                       (*Interpreter).hText,

		// Printer reset and line spacing.
		"reset_printer":         (*Interpreter).hResetPrinter,
		"set_18_line_spacing":   (*Interpreter).hSet18LineSpacing,
		"set_772_line_spacing":  (*Interpreter).hSet772LineSpacing,
		"unset_18_line_spacing": (*Interpreter).hUnset18LineSpacing,
		"set_n180_line_spacing": (*Interpreter).hSetN180LineSpacing,
		"set_n360_line_spacing": (*Interpreter).hSetN360LineSpacing,
		"set_n60_line_spacing":  (*Interpreter).hSetN60LineSpacing,

		// Margins and page length.
		"set_left_margin":              (*Interpreter).hSetLeftMargin,
		"set_right_margin":             (*Interpreter).hSetRightMargin,
		"set_bottom_margin":            (*Interpreter).hSetBottomMargin,
		"cancel_top_bottom_margins":    (*Interpreter).hCancelTopBottomMargins,
		"set_page_length_inches":       (*Interpreter).hSetPageLengthInches,
		"set_page_length_lines":        (*Interpreter).hSetPageLengthLines,
		"set_page_length_defined_unit": (*Interpreter).hSetPageLengthDefinedUnit,
		"set_page_format":              (*Interpreter).hSetPageFormat,

		// Cursor positioning.
		"set_absolute_horizontal_print_position": (*Interpreter).hSetAbsoluteHorizontalPosition,
		"set_relative_horizontal_print_position": (*Interpreter).hSetRelativeHorizontalPosition,
		"set_absolute_vertical_print_position":   (*Interpreter).hSetAbsoluteVerticalPosition,
		"set_relative_vertical_print_position":   (*Interpreter).hSetRelativeVerticalPosition,
		"advance_print_position_vertically":      (*Interpreter).hAdvancePrintPositionVertically,
		"set_horizontal_tabs":                    (*Interpreter).hSetHorizontalTabs,
		"set_vertical_tabs":                      (*Interpreter).hSetVerticalTabs,

		// Typeface, pitch and point size.
		"select_typeface":                (*Interpreter).hSelectTypeface,
		"select_font_by_pitch_and_point": (*Interpreter).hSelectFontByPitchAndPoint,
		"select_10cpi":                   (*Interpreter).hSelect10cpi,
		"select_12cpi":                   (*Interpreter).hSelect12cpi,
		"select_15cpi":                   (*Interpreter).hSelect15cpi,
		"switch_proportional_mode":       (*Interpreter).hSwitchProportionalMode,
		"select_letter_quality_or_draft": (*Interpreter).hSelectLetterQualityOrDraft,
		"set_horizontal_motion_index":    (*Interpreter).hSetHorizontalMotionIndex,
		"set_intercharacter_space":       (*Interpreter).hSetIntercharacterSpace,
		"select_condensed_printing":      (*Interpreter).hSelectCondensedPrinting,
		"unset_condensed_printing":       (*Interpreter).hUnsetCondensedPrinting,
		"select_double_width_printing":   (*Interpreter).hSelectDoubleWidthPrinting,
		"unset_double_width_printing":    (*Interpreter).hUnsetDoubleWidthPrinting,
		"switch_double_width_printing":   (*Interpreter).hSwitchDoubleWidthPrinting,
		"switch_double_height_printing":  (*Interpreter).hSwitchDoubleHeightPrinting,

		// Character attributes.
		"master_select":                (*Interpreter).hMasterSelect,
		"set_italic":                   (*Interpreter).hSetItalic,
		"unset_italic":                 (*Interpreter).hUnsetItalic,
		"set_bold":                     (*Interpreter).hSetBold,
		"unset_bold":                   (*Interpreter).hUnsetBold,
		"switch_underline":             (*Interpreter).hSwitchUnderline,
		"set_double_strike_printing":   (*Interpreter).hSetDoubleStrikePrinting,
		"unset_double_strike_printing": (*Interpreter).hUnsetDoubleStrikePrinting,
		"set_script_printing":          (*Interpreter).hSetScriptPrinting,
		"unset_script_printing":        (*Interpreter).hUnsetScriptPrinting,
		"select_character_style":       (*Interpreter).hSelectCharacterStyle,
		"set_printing_color":           (*Interpreter).hSetPrintingColor,

		// Character tables and codepages.
		"select_character_table":             (*Interpreter).hSelectCharacterTable,
		"select_international_charset":       (*Interpreter).hSelectInternationalCharset,
		"assign_character_table":             (*Interpreter).hAssignCharacterTable,
		"select_user_defined_set":            (*Interpreter).hSelectUserDefinedSet,
		"copy_ROM_to_RAM":                    (*Interpreter).hCopyROMToRAM,
		"define_user_defined_ram_characters": (*Interpreter).hDefineUserDefinedRAMCharacters,
		"set_upper_control_codes_printing":   (*Interpreter).hSetUpperControlCodes,
		"unset_upper_control_codes_printing": (*Interpreter).hUnsetUpperControlCodes,

		// Bit image and raster graphics.
		"select_bit_image":                    (*Interpreter).hSelectBitImage,
		"reassign_bit_image_mode":             (*Interpreter).hReassignBitImageMode,
		"select_60dpi_graphics":               (*Interpreter).hSelect60dpiGraphics,
		"select_120dpi_graphics":              (*Interpreter).hSelect120dpiGraphics,
		"select_120dpi_double_speed_graphics": (*Interpreter).hSelect120dpiDoubleSpeedGraphics,
		"select_240dpi_graphics":              (*Interpreter).hSelect240dpiGraphics,
		"select_60_120dpi_9pins_graphics":     (*Interpreter).hSelect9PinGraphics,
		"set_unit":                            (*Interpreter).hSetUnit,
		"set_graphics_mode":                   (*Interpreter).hSetGraphicsMode,
		"switch_microweave_mode":              (*Interpreter).hSwitchMicroweaveMode,
		"print_raster_graphics":               (*Interpreter).hPrintRasterGraphics,
		"select_line_score":                   (*Interpreter).hSelectLineScore,
		"print_data_as_characters":            (*Interpreter).hPrintDataAsCharacters,

		// TIFF-compressed raster sub-machine.
		"print_tiff_raster_graphics":       (*Interpreter).hPrintTIFFRasterGraphics,
		"exit_tiff_raster_graphics":        (*Interpreter).hExitTIFFRasterGraphics,
		"clear_ex":                         (*Interpreter).hClearEx,
		"set_printing_color_ex":            (*Interpreter).hSetPrintingColorEx,
		"set_movx_unit_8dots":              (*Interpreter).hSetMovxUnit8Dots,
		"set_movx_unit_1dot":               (*Interpreter).hSetMovxUnit1Dot,
		"transfer_raster_graphics_data":    (*Interpreter).hTransferRasterGraphicsData,
		"set_relative_horizontal_position": (*Interpreter).hMovx,
		"set_relative_vertical_position":   (*Interpreter).hMovy,

		// Barcode.
		"barcode": (*Interpreter).hBarcode,
	}
}

package voice

import "fmt"

// BuildVoiceOrderPrompt renders the strict parsing prompt. The rules it
// states are load-bearing: the reconciler trusts that names and variants
// are exact catalog matches and that items with undeterminable required
// variants were omitted, so it never re-validates them.
func BuildVoiceOrderPrompt(transcript, menuJSON string) string {
	return fmt.Sprintf(`Eres un sistema experto de punto de venta para un restaurante de mariscos mexicano. Tu tarea es analizar la transcripción de una orden hablada por un mesero y convertirla en un formato JSON estructurado.

**Reglas Críticas e Inquebrantables:**
1. **Exactitud Absoluta del Menú:** DEBES usar los nombres de platillos y variantes EXACTAMENTE como aparecen en el menú JSON proporcionado. Si un platillo o variante no existe, NO LO INVENTES. No asumas ni corrijas errores de dedo.
2. **Validación Estricta de Variantes:** Las variantes que identifiques DEBEN pertenecer al platillo con el que las asocias. Si no pertenecen, NO proceses ese ítem.
3. **Interpretación de Palabras Clave:** "Media orden", "media", "chica", "mediana", "grande" son variantes de "Porción" o "Tamaño". "Sin..." o "que no lleve..." debe mapearse a la variante correspondiente en la categoría "S/N". Presta atención a las preparaciones (ej: "a la diabla", "empanizados").
4. **Cantidades:** Interpreta cantidades numéricas ('dos', 'una', 'un', 'tres', etc.) y asócialas con los platillos correctos. Si no se menciona cantidad, asume que es 1.
5. **Manejo de Ambigüedad (Regla de Oro):** Si la orden es ambigua o no puedes identificar con certeza un platillo del menú, es MEJOR NO INCLUIRLO en la respuesta a incluir algo incorrecto. Devuelve un arreglo de 'items' vacío si no estás seguro.
6. **Variantes Obligatorias:** Si un platillo requiere una variante obligatoria (ej. 'Tamaño' para un 'Cóctel') y no se especifica en la orden, no incluyas el platillo. No asumas ni infieras variantes obligatorias.

**Esquema de salida requerido:**
{"items": [{"qty": number, "name": "string", "variants": ["string"]}]}

**Datos para procesar:**
La transcripción de la orden del mesero es: %s
El menú del restaurante es: %s

Responde ÚNICAMENTE con el objeto JSON. No incluyas texto adicional, explicaciones o disculpas. Si no encuentras ningún platillo válido, responde con {"items": []}.`, transcript, menuJSON)
}

// BuildDishDescriptionPrompt asks for a short, appetizing menu
// description.
func BuildDishDescriptionPrompt(dishName, ingredients string) string {
	return fmt.Sprintf(`Eres el chef de un restaurante de mariscos mexicano. Escribe una descripción corta y apetitosa (máximo 2 frases) para el menú.

Platillo: %s
Ingredientes: %s

Responde únicamente con la descripción, sin comillas ni texto adicional.`, dishName, ingredients)
}

// BuildDailySpecialPrompt asks for a daily-special announcement built from
// overstocked ingredients.
func BuildDailySpecialPrompt(ingredients string) string {
	return fmt.Sprintf(`Eres el chef de un restaurante de mariscos mexicano. Inventa una "sugerencia del día" atractiva usando estos ingredientes disponibles en abundancia: %s

Responde con un JSON: {"name": "nombre del platillo", "description": "descripción corta", "price": number}. Responde únicamente con el JSON.`, ingredients)
}

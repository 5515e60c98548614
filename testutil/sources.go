package testutil

// Kanjidic2XML is a kanjidic2 excerpt with the fixture characters 一, 亜,
// 学 and 水. Field values match Entries except for components, which come
// from KradfileUTF8.
const Kanjidic2XML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE kanjidic2 [
<!ELEMENT kanjidic2 (header,character*)>
]>
<kanjidic2>
<header>
<file_version>4</file_version>
<database_version>2024-001</database_version>
<date_of_creation>2024-01-01</date_of_creation>
</header>
<!-- Entry for Kanji: 一 -->
<character>
<literal>一</literal>
<codepoint>
<cp_value cp_type="ucs">4e00</cp_value>
<cp_value cp_type="jis208">1-16-76</cp_value>
</codepoint>
<radical>
<rad_value rad_type="classical">1</rad_value>
<rad_value rad_type="nelson_c">1</rad_value>
</radical>
<misc>
<grade>1</grade>
<stroke_count>1</stroke_count>
<freq>2</freq>
<jlpt>4</jlpt>
</misc>
<dic_number>
<dic_ref dr_type="nelson_c">1</dic_ref>
</dic_number>
<reading_meaning>
<rmgroup>
<reading r_type="pinyin">yi1</reading>
<reading r_type="korean_r">il</reading>
<reading r_type="ja_on">イチ</reading>
<reading r_type="ja_on">イツ</reading>
<reading r_type="ja_kun">ひと-</reading>
<reading r_type="ja_kun">ひと.つ</reading>
<meaning>one</meaning>
<meaning>one radical (no.1)</meaning>
<meaning m_lang="fr">un</meaning>
<meaning m_lang="es">uno</meaning>
</rmgroup>
<nanori>かず</nanori>
<nanori>はじめ</nanori>
</reading_meaning>
</character>
<!-- Entry for Kanji: 亜 -->
<character>
<literal>亜</literal>
<codepoint>
<cp_value cp_type="ucs">4e9c</cp_value>
<cp_value cp_type="jis208">1-16-01</cp_value>
</codepoint>
<radical>
<rad_value rad_type="classical">7</rad_value>
<rad_value rad_type="nelson_c">1</rad_value>
</radical>
<misc>
<grade>8</grade>
<stroke_count>7</stroke_count>
<stroke_count>8</stroke_count>
<variant var_type="jis208">1-48-19</variant>
<variant var_type="ucs">4e9e</variant>
<freq>1509</freq>
<jlpt>1</jlpt>
</misc>
<reading_meaning>
<rmgroup>
<reading r_type="ja_on">ア</reading>
<reading r_type="ja_kun">つ.ぐ</reading>
<meaning>Asia</meaning>
<meaning>rank next</meaning>
<meaning m_lang="fr">Asie</meaning>
</rmgroup>
<nanori>や</nanori>
<nanori>つぎ</nanori>
</reading_meaning>
</character>
<!-- Entry for Kanji: 学 -->
<character>
<literal>学</literal>
<codepoint>
<cp_value cp_type="ucs">5b66</cp_value>
<cp_value cp_type="jis208">1-19-56</cp_value>
</codepoint>
<radical>
<rad_value rad_type="classical">39</rad_value>
</radical>
<misc>
<grade>1</grade>
<stroke_count>8</stroke_count>
<variant var_type="ucs">5b78</variant>
<freq>63</freq>
<jlpt>4</jlpt>
</misc>
<reading_meaning>
<rmgroup>
<reading r_type="ja_on">ガク</reading>
<reading r_type="ja_kun">まな.ぶ</reading>
<meaning>study</meaning>
<meaning>learning</meaning>
<meaning m_lang="fr">étude</meaning>
</rmgroup>
</reading_meaning>
</character>
<!-- Entry for Kanji: 水 -->
<character>
<literal>水</literal>
<codepoint>
<cp_value cp_type="ucs">6c34</cp_value>
<cp_value cp_type="jis208">1-35-31</cp_value>
</codepoint>
<radical>
<rad_value rad_type="classical">85</rad_value>
</radical>
<misc>
<grade>1</grade>
<stroke_count>4</stroke_count>
<freq>223</freq>
<jlpt>4</jlpt>
<rad_name>みず</rad_name>
</misc>
<reading_meaning>
<rmgroup>
<reading r_type="ja_on">スイ</reading>
<reading r_type="ja_kun">みず</reading>
<reading r_type="ja_kun">みず-</reading>
<meaning>water</meaning>
<meaning m_lang="fr">eau</meaning>
</rmgroup>
<nanori>み</nanori>
<nanori>みな</nanori>
</reading_meaning>
</character>
</kanjidic2>
`

// KradfileUTF8 decomposes the characters of Kanjidic2XML.
const KradfileUTF8 = `# KRADFILE excerpt
#
一 : 一
亜 : 一 口
学 : 冖 子
水 : 水
`
